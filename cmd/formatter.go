package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/s0up4200/roosterteeth/schema"
)

const (
	branch     = "├"
	lastBranch = "╰"
	pipe       = "│"
	dash       = "──"
)

// ConsoleFormatter renders catalog items as trees for the terminal
type ConsoleFormatter struct {
	ShowDetails bool
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(showDetails bool) *ConsoleFormatter {
	return &ConsoleFormatter{ShowDetails: showDetails}
}

// treeItem is one rendered entry: a title line and optional detail lines.
type treeItem struct {
	title   string
	details []string
}

func writeTree(sb *strings.Builder, items []treeItem, indent string) {
	for i, item := range items {
		isLast := i == len(items)-1
		prefix := lo.Ternary(isLast, lastBranch, branch)
		fmt.Fprintf(sb, "%s%s%s %s\n", indent, prefix, dash, item.title)

		childIndent := indent + lo.Ternary(isLast, "    ", pipe+"   ")
		for _, line := range item.details {
			fmt.Fprintf(sb, "%s%s\n", childIndent, line)
		}
	}
}

func header(noun string, count int) string {
	return fmt.Sprintf("\n%s (%d):\n\n", lo.Ternary(count == 1, noun, noun+"s"), count)
}

// FormatChannels formats channels for console display
func (f *ConsoleFormatter) FormatChannels(channels []schema.Channel) string {
	if len(channels) == 0 {
		return "No channels found"
	}

	items := lo.Map(channels, func(c schema.Channel, _ int) treeItem {
		item := treeItem{title: fmt.Sprintf("%s (%s)", c.Attributes.Name, c.Attributes.Slug)}
		if f.ShowDetails {
			item.details = append(item.details, "UUID: "+c.UUID)
			if len(c.Included.Images) > 0 {
				item.details = append(item.details, fmt.Sprintf("Images: %d", len(c.Included.Images)))
			}
		}
		return item
	})

	var sb strings.Builder
	sb.WriteString(header("Channel", len(channels)))
	writeTree(&sb, items, "")
	return sb.String()
}

// FormatSeries formats a list of series for console display
func (f *ConsoleFormatter) FormatSeries(series []schema.Series) string {
	if len(series) == 0 {
		return "No series found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nSeries (%d):\n\n", len(series))
	writeTree(&sb, lo.Map(series, func(s schema.Series, _ int) treeItem { return f.seriesItem(&s) }), "")
	return sb.String()
}

func (f *ConsoleFormatter) seriesItem(s *schema.Series) treeItem {
	attrs := s.Attributes
	item := treeItem{title: fmt.Sprintf("%s (%s)", attrs.Title, attrs.Slug)}
	item.details = append(item.details,
		fmt.Sprintf("%d seasons, %d episodes | %s", attrs.SeasonCount, attrs.EpisodeCount, attrs.ChannelSlug))

	if f.ShowDetails {
		if len(attrs.Genres) > 0 {
			item.details = append(item.details, "Genres: "+strings.Join(attrs.Genres, ", "))
		}
		item.details = append(item.details, fmt.Sprintf("Category: %s | Updated: %s | Last episode: %s",
			attrs.Category, attrs.UpdatedAt.Format(time.DateOnly), attrs.LastEpisodeGoliveAt.Format(time.DateOnly)))
		if attrs.IsSponsorsOnly {
			item.details = append(item.details, "Sponsors only")
		}
	}
	return item
}

// FormatSeriesDetail formats a single series
func (f *ConsoleFormatter) FormatSeriesDetail(s schema.Series) string {
	var sb strings.Builder
	attrs := s.Attributes
	fmt.Fprintf(&sb, "\n%s (%s)\n", attrs.Title, attrs.Slug)
	fmt.Fprintf(&sb, "  UUID:     %s\n", s.UUID)
	fmt.Fprintf(&sb, "  Channel:  %s\n", attrs.ChannelSlug)
	fmt.Fprintf(&sb, "  Category: %s\n", attrs.Category)
	fmt.Fprintf(&sb, "  Seasons:  %d (%d episodes)\n", attrs.SeasonCount, attrs.EpisodeCount)
	if len(attrs.Genres) > 0 {
		fmt.Fprintf(&sb, "  Genres:   %s\n", strings.Join(attrs.Genres, ", "))
	}
	if summary := strings.TrimSpace(attrs.Summary); summary != "" {
		fmt.Fprintf(&sb, "\n  %s\n", summary)
	}
	return sb.String()
}

// FormatSeasons formats seasons for console display
func (f *ConsoleFormatter) FormatSeasons(seasons []schema.Season) string {
	if len(seasons) == 0 {
		return "No seasons found"
	}

	var sb strings.Builder
	sb.WriteString(header("Season", len(seasons)))
	writeTree(&sb, lo.Map(seasons, func(s schema.Season, _ int) treeItem { return f.seasonItem(&s) }), "")
	return sb.String()
}

func (f *ConsoleFormatter) seasonItem(s *schema.Season) treeItem {
	attrs := s.Attributes
	item := treeItem{title: fmt.Sprintf("%d. %s (%s)", attrs.Number, attrs.Title, attrs.Slug)}
	if f.ShowDetails {
		avail := attrs.EpisodesAvailable
		tiers := lo.Compact([]string{
			lo.Ternary(avail.Public, "public", ""),
			lo.Ternary(avail.Sponsor, "sponsor", ""),
			lo.Ternary(avail.Member, "member", ""),
		})
		item.details = append(item.details, fmt.Sprintf("Published: %s | Available to: %s",
			attrs.PublishedAt.Format(time.DateOnly), lo.Ternary(len(tiers) > 0, strings.Join(tiers, ", "), "nobody")))
	}
	return item
}

// FormatEpisodes formats episodes for console display
func (f *ConsoleFormatter) FormatEpisodes(episodes []schema.Episode) string {
	if len(episodes) == 0 {
		return "No episodes found"
	}

	var sb strings.Builder
	sb.WriteString(header("Episode", len(episodes)))
	writeTree(&sb, lo.Map(episodes, func(e schema.Episode, _ int) treeItem { return f.episodeItem(&e) }), "")
	return sb.String()
}

func (f *ConsoleFormatter) episodeItem(e *schema.Episode) treeItem {
	attrs := e.Attributes
	item := treeItem{title: fmt.Sprintf("S%02dE%02d %s (%s)", attrs.SeasonNumber, attrs.Number, attrs.Title, attrs.Slug)}

	var parts []string
	parts = append(parts, e.Duration().String())
	if attrs.IsSponsorsOnly {
		parts = append(parts, "sponsors only")
	}
	if attrs.IsLive {
		parts = append(parts, "live")
	}
	item.details = append(item.details, strings.Join(parts, " | "))

	if f.ShowDetails {
		item.details = append(item.details, fmt.Sprintf("Public: %s | Sponsor: %s | Member: %s",
			attrs.PublicGoliveAt.Format(time.DateOnly),
			attrs.SponsorGoliveAt.Format(time.DateOnly),
			attrs.MemberGoliveAt.Format(time.DateOnly)))

		tags := lo.Map(e.Included.Tags, func(t schema.Tag, _ int) string { return t.Attributes.Tag })
		if len(tags) > 0 {
			item.details = append(item.details, "Tags: "+strings.Join(tags, ", "))
		}
		if cast := e.CastNames(); len(cast) > 0 {
			item.details = append(item.details, "Cast: "+strings.Join(cast, ", "))
		}
	}
	return item
}

// FormatVideo formats the playback descriptor of an episode
func (f *ConsoleFormatter) FormatVideo(v schema.Video) string {
	var sb strings.Builder
	attrs := v.Attributes
	fmt.Fprintf(&sb, "\n%s\n", attrs.ContentSlug)
	fmt.Fprintf(&sb, "  Playlist: %s\n", attrs.URL)
	fmt.Fprintf(&sb, "  Episode:  %d (%s)\n", attrs.ContentID, attrs.ContentUUID)
	fmt.Fprintf(&sb, "  Tier:     %s\n", attrs.MemberTier)
	if f.ShowDetails {
		if bif, ok := attrs.BifURL.Get(); ok {
			fmt.Fprintf(&sb, "  Thumbs:   %s\n", bif)
		}
		if ads, ok := attrs.AdConfig.Get(); ok {
			fmt.Fprintf(&sb, "  Ads:      %d preroll, %d midroll\n", len(ads.Preroll), len(ads.Midroll))
		}
		fmt.Fprintf(&sb, "  Download: %s\n", v.Links.Download)
	}
	return sb.String()
}

// seasonTree pairs a season with its episodes for FormatTree.
type seasonTree struct {
	Season   schema.Season    `json:"season"`
	Episodes []schema.Episode `json:"episodes"`
}

// FormatTree formats a series with its seasons and their episodes
func (f *ConsoleFormatter) FormatTree(series schema.Series, seasons []seasonTree) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%s)\n", series.Attributes.Title, series.Attributes.Slug)

	for i, st := range seasons {
		isLast := i == len(seasons)-1
		item := f.seasonItem(&st.Season)
		fmt.Fprintf(&sb, "%s%s %s\n", lo.Ternary(isLast, lastBranch, branch), dash, item.title)

		indent := lo.Ternary(isLast, "    ", pipe+"   ")
		episodes := lo.Map(st.Episodes, func(e schema.Episode, _ int) treeItem {
			return treeItem{title: f.episodeItem(&e).title}
		})
		writeTree(&sb, episodes, indent)
	}
	return sb.String()
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
