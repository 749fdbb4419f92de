package schema

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// Tier is an audience tier with its own go-live timestamp.
type Tier string

const (
	TierPublic  Tier = "public"
	TierSponsor Tier = "sponsor"
	TierMember  Tier = "member"
)

// Episode is the catalog record of one episode. Playback data lives in Video.
type Episode struct {
	Index          string                `json:"_index"`
	Sort           Optional[[]uint64]    `json:"sort"`
	ID             uint32                `json:"id"`
	Kind           string                `json:"type"`
	UUID           string                `json:"uuid"`
	Attributes     EpisodeAttributes     `json:"attributes"`
	Links          EpisodeLinks          `json:"links"`
	CanonicalLinks EpisodeCanonicalLinks `json:"canonical_links"`
	Included       EpisodeIncluded       `json:"included"`
}

// EpisodeAttributes holds the catalog data of an episode. Show, season and
// channel ids are repeated here so an episode can be placed without extra
// lookups.
type EpisodeAttributes struct {
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Caption      string `json:"caption"`
	Number       uint16 `json:"number"`
	Description  string `json:"description"`
	DisplayTitle string `json:"display_title"`
	// Length is in seconds.
	Length uint32 `json:"length"`

	AdvertConfig string           `json:"advert_config"`
	Advertising  bool             `json:"advertising"`
	AdTimestamps Optional[string] `json:"ad_timestamps"`

	PublicGoliveAt  time.Time `json:"public_golive_at"`
	SponsorGoliveAt time.Time `json:"sponsor_golive_at"`
	MemberGoliveAt  time.Time `json:"member_golive_at"`
	OriginalAirDate time.Time `json:"original_air_date"`

	ChannelID    string `json:"channel_id"`
	ChannelSlug  string `json:"channel_slug"`
	SeasonID     string `json:"season_id"`
	SeasonSlug   string `json:"season_slug"`
	SeasonNumber uint16 `json:"season_number"`

	ShowTitle      string   `json:"show_title"`
	ShowID         string   `json:"show_id"`
	ShowSlug       string   `json:"show_slug"`
	IsSponsorsOnly bool     `json:"is_sponsors_only"`
	MemberTierI    int8     `json:"member_tier_i"`
	SortNumber     uint32   `json:"sort_number"`
	Genres         []string `json:"genres"`

	IsLive               bool     `json:"is_live"`
	IsSchedulable        bool     `json:"is_schedulable"`
	SeasonOrder          string   `json:"season_order"`
	EpisodeOrder         string   `json:"episode_order"`
	Downloadable         bool     `json:"downloadable"`
	BlacklistedCountries []string `json:"blacklisted_countries"`
	UpsellNext           bool     `json:"upsell_next"`
}

type EpisodeLinks struct {
	Reference    string `json:"self"`
	Show         string `json:"show"`
	RelatedShows string `json:"related_shows"`
	Channel      string `json:"channel"`
	Season       string `json:"season"`
	Related      string `json:"related"`
	Next         string `json:"next"`
	Videos       string `json:"videos"`
	Products     string `json:"products"`
}

type EpisodeCanonicalLinks struct {
	Reference string `json:"self"`
}

type EpisodeIncluded struct {
	Images      []Image                `json:"images"`
	Tags        []Tag                  `json:"tags"`
	CastMembers Optional[[]CastMember] `json:"cast_members"`
}

// GoliveAt returns when the episode becomes visible to tier.
func (e *Episode) GoliveAt(tier Tier) (time.Time, bool) {
	switch tier {
	case TierPublic:
		return e.Attributes.PublicGoliveAt, true
	case TierSponsor:
		return e.Attributes.SponsorGoliveAt, true
	case TierMember:
		return e.Attributes.MemberGoliveAt, true
	default:
		return time.Time{}, false
	}
}

// LiveFor reports whether the episode is visible to tier at now.
// The comparison is instant based, so the upstream offsets need no normalizing.
func (e *Episode) LiveFor(tier Tier, now time.Time) bool {
	at, ok := e.GoliveAt(tier)
	if !ok {
		return false
	}
	return !now.Before(at)
}

// Duration returns Length as a time.Duration.
func (e *Episode) Duration() time.Duration {
	return time.Duration(e.Attributes.Length) * time.Second
}

// HasTag reports whether a tag with the given text or slug is attached.
func (e *Episode) HasTag(tag string) bool {
	return lo.ContainsBy(e.Included.Tags, func(t Tag) bool {
		return strings.EqualFold(t.Attributes.Tag, tag) || strings.EqualFold(t.Attributes.Slug, tag)
	})
}

// HasGenre reports whether genre is listed, ignoring case.
func (e *Episode) HasGenre(genre string) bool {
	return containsFold(e.Attributes.Genres, genre)
}

// CastNames returns the display names of the credited cast, or nil when the
// payload carried no cast list.
func (e *Episode) CastNames() []string {
	cast, ok := e.Included.CastMembers.Get()
	if !ok {
		return nil
	}
	return lo.Map(cast, func(c CastMember, _ int) string {
		return c.Attributes.DisplayName
	})
}

func containsFold(values []string, want string) bool {
	return lo.ContainsBy(values, func(v string) bool {
		return strings.EqualFold(v, want)
	})
}
