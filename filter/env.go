package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/s0up4200/roosterteeth/schema"
)

// baseEnv holds the helpers shared by every item kind. They read the clock
// through now so tests can pin it.
func baseEnv(now func() time.Time) map[string]any {
	return map[string]any{
		// Date helpers
		"daysSince": func(t time.Time) int {
			return int(now().Sub(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return now().AddDate(0, 0, -days)
		},
		"monthsAgo": func(months int) time.Time {
			return now().AddDate(0, -months, 0)
		},
		"yearsAgo": func(years int) time.Time {
			return now().AddDate(-years, 0, 0)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse(time.DateOnly, dateStr)
			return t
		},
		// String helpers, case-insensitive unlike the contains,
		// startsWith and endsWith operators
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"hasSuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
	}
}

func episodeEnv(ep *schema.Episode, now func() time.Time) map[string]any {
	env := baseEnv(now)
	attrs := ep.Attributes

	env["Episode"] = ep
	env["Title"] = attrs.Title
	env["Slug"] = attrs.Slug
	env["Number"] = int(attrs.Number)
	env["Show"] = attrs.ShowSlug
	env["ShowTitle"] = attrs.ShowTitle
	env["SeasonSlug"] = attrs.SeasonSlug
	env["SeasonNumber"] = int(attrs.SeasonNumber)
	env["Channel"] = attrs.ChannelSlug
	env["Genres"] = attrs.Genres
	env["Tags"] = lo.Map(ep.Included.Tags, func(t schema.Tag, _ int) string { return t.Attributes.Tag })
	env["Cast"] = ep.CastNames()
	env["Length"] = int(attrs.Length)
	env["SponsorsOnly"] = attrs.IsSponsorsOnly
	env["Live"] = attrs.IsLive
	env["Downloadable"] = attrs.Downloadable
	env["AirDate"] = attrs.OriginalAirDate
	env["PublicGoliveAt"] = attrs.PublicGoliveAt
	env["SponsorGoliveAt"] = attrs.SponsorGoliveAt
	env["MemberGoliveAt"] = attrs.MemberGoliveAt

	env["hasGenre"] = ep.HasGenre
	env["hasTag"] = ep.HasTag
	env["hasCast"] = func(name string) bool {
		return lo.ContainsBy(ep.CastNames(), func(n string) bool {
			return strings.EqualFold(n, name)
		})
	}
	env["liveFor"] = func(tier string) bool {
		return ep.LiveFor(schema.Tier(strings.ToLower(tier)), now())
	}
	return env
}

func seriesEnv(s *schema.Series, now func() time.Time) map[string]any {
	env := baseEnv(now)
	attrs := s.Attributes

	env["Series"] = s
	env["Title"] = attrs.Title
	env["Slug"] = attrs.Slug
	env["Channel"] = attrs.ChannelSlug
	env["Category"] = attrs.Category
	env["Genres"] = attrs.Genres
	env["SeasonCount"] = int(attrs.SeasonCount)
	env["EpisodeCount"] = int(attrs.EpisodeCount)
	env["SponsorsOnly"] = attrs.IsSponsorsOnly
	env["UpdatedAt"] = attrs.UpdatedAt
	env["PublishedAt"] = attrs.PublishedAt
	env["LastEpisodeGoliveAt"] = attrs.LastEpisodeGoliveAt

	env["hasGenre"] = s.HasGenre
	env["hasRichCard"] = s.HasRichCard
	return env
}

func seasonEnv(s *schema.Season, now func() time.Time) map[string]any {
	env := baseEnv(now)
	attrs := s.Attributes

	env["Season"] = s
	env["Title"] = attrs.Title
	env["Slug"] = attrs.Slug
	env["Number"] = int(attrs.Number)
	env["Show"] = attrs.ShowSlug
	env["PublishedAt"] = attrs.PublishedAt

	env["availableFor"] = func(tier string) bool {
		avail := attrs.EpisodesAvailable
		switch schema.Tier(strings.ToLower(tier)) {
		case schema.TierPublic:
			return avail.Public
		case schema.TierSponsor:
			return avail.Sponsor
		case schema.TierMember:
			return avail.Member
		}
		return false
	}
	return env
}

// compileEnv declares every name any item kind provides so expressions are
// type-checked once, whatever they are later matched against. Names shared
// between kinds carry the same type in each env.
func compileEnv() map[string]any {
	env := seasonEnv(&schema.Season{}, time.Now)
	maps.Copy(env, seriesEnv(&schema.Series{}, time.Now))
	maps.Copy(env, episodeEnv(&schema.Episode{}, time.Now))
	return env
}
