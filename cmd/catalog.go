package cmd

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/s0up4200/roosterteeth/filter"
	"github.com/s0up4200/roosterteeth/roosterteeth"
	"github.com/s0up4200/roosterteeth/schema"
)

var (
	pageFlag    uint16
	channelFlag string
	orderFlag   string
)

// render prints v as JSON or the console text, depending on output.format.
func render(cmd *cobra.Command, v any, text string) error {
	if cfg.Output.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func formatter() *ConsoleFormatter {
	return NewConsoleFormatter(cfg.Output.ShowDetails)
}

func listOptions() roosterteeth.ListOptions {
	return roosterteeth.ListOptions{ChannelID: channelFlag, Order: roosterteeth.Order(orderFlag)}
}

// applyFilter keeps the items match accepts. A nil filter keeps everything.
func applyFilter[T any](items []T, f *filter.Filter, match func(*filter.Filter, *T) bool) []T {
	if f == nil {
		return items
	}
	kept := lo.Filter(items, func(item T, _ int) bool { return match(f, &item) })
	logger.Debug().
		Str("filter", f.String()).
		Int("total", len(items)).
		Int("matched", len(kept)).
		Msg("Applied filter")
	return kept
}

// channelsCmd represents the channels command
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List all channels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}

		channels, err := client.ListChannels(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list channels: %w", err)
		}
		return render(cmd, channels, formatter().FormatChannels(channels))
	},
}

// episodesCmd represents the episodes command
var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "List one page of the latest episodes",
	Long: `List up to 100 episodes of the given page, newest first unless --order asc
is given. Use --channel to restrict the list to one channel slug.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := getFilter()
		if err != nil {
			return err
		}

		client, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}

		page, err := client.EpisodesPage(cmd.Context(), pageFlag, listOptions())
		if err != nil {
			return fmt.Errorf("failed to list episodes: %w", err)
		}

		episodes := applyFilter(page.Data, f, (*filter.Filter).MatchEpisode)
		text := formatter().FormatEpisodes(episodes)
		if total, ok := page.TotalPages.Get(); ok {
			text += fmt.Sprintf("\nPage %d of %d (%d results)", pageFlag, total, page.TotalResults.OrElse(0))
		}
		return render(cmd, episodes, text)
	},
}

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "List series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := getFilter()
		if err != nil {
			return err
		}

		client, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}

		series, err := client.ListSeries(cmd.Context(), listOptions())
		if err != nil {
			return fmt.Errorf("failed to list series: %w", err)
		}

		series = applyFilter(series, f, (*filter.Filter).MatchSeries)
		return render(cmd, series, formatter().FormatSeries(series))
	},
}

// seasonsCmd represents the seasons command
var seasonsCmd = &cobra.Command{
	Use:   "seasons <series-slug>",
	Short: "List the seasons of a series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := getFilter()
		if err != nil {
			return err
		}

		client, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}

		seasons, err := client.GetSeasons(cmd.Context(), args[0], roosterteeth.Order(orderFlag))
		if err != nil {
			return fmt.Errorf("failed to get seasons of %s: %w", args[0], err)
		}

		seasons = applyFilter(seasons, f, (*filter.Filter).MatchSeason)
		return render(cmd, seasons, formatter().FormatSeasons(seasons))
	},
}

// seasonEpisodesCmd represents the season-episodes command
var seasonEpisodesCmd = &cobra.Command{
	Use:   "season-episodes <season-slug>",
	Short: "List the episodes of a season, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := getFilter()
		if err != nil {
			return err
		}

		client, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}

		episodes, err := client.GetSeasonEpisodes(cmd.Context(), args[0], roosterteeth.Order(orderFlag))
		if err != nil {
			return fmt.Errorf("failed to get episodes of %s: %w", args[0], err)
		}

		episodes = applyFilter(episodes, f, (*filter.Filter).MatchEpisode)
		return render(cmd, episodes, formatter().FormatEpisodes(episodes))
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <series-slug>",
	Short: "Show a single series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}

		series, err := client.GetSeries(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get series %s: %w", args[0], err)
		}
		return render(cmd, series, formatter().FormatSeriesDetail(series))
	},
}

// episodeCmd represents the episode command
var episodeCmd = &cobra.Command{
	Use:   "episode <episode-slug>",
	Short: "Show a single episode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}

		episode, err := client.GetEpisode(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get episode %s: %w", args[0], err)
		}
		return render(cmd, episode, NewConsoleFormatter(true).FormatEpisodes([]schema.Episode{episode}))
	},
}

// videoCmd represents the video command
var videoCmd = &cobra.Command{
	Use:   "video <episode-slug>",
	Short: "Resolve the playback data of an episode",
	Long: `Resolve the playback data of an episode. Episodes that are not yet public,
or that need a sponsorship, are refused unless you log in with an entitled account.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}

		video, err := client.GetVideo(cmd.Context(), args[0])
		if errors.Is(err, roosterteeth.ErrVideoUnavailable) {
			logger.Warn().Str("episode", args[0]).Msg("Video is not available for this account")
			return err
		}
		if err != nil {
			return fmt.Errorf("failed to get video of %s: %w", args[0], err)
		}
		return render(cmd, video, formatter().FormatVideo(video))
	},
}

func init() {
	episodesCmd.Flags().Uint16Var(&pageFlag, "page", 1, "page number, starting at 1")

	for _, c := range []*cobra.Command{episodesCmd, seriesCmd} {
		c.Flags().StringVar(&channelFlag, "channel", "", "restrict to a channel slug")
	}
	for _, c := range []*cobra.Command{episodesCmd, seriesCmd, seasonsCmd, seasonEpisodesCmd} {
		c.Flags().StringVar(&orderFlag, "order", "", "sort order: asc or desc")
	}

	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(seasonsCmd)
	rootCmd.AddCommand(seasonEpisodesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(episodeCmd)
	rootCmd.AddCommand(videoCmd)
}
