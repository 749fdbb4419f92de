package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/roosterteeth/filter"
	"github.com/s0up4200/roosterteeth/roosterteeth"
	"github.com/s0up4200/roosterteeth/schema"
)

// treeConcurrency bounds the season-episode requests in flight.
const treeConcurrency = 4

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree <series-slug>",
	Short: "Show a series with all of its seasons and episodes",
	Long: `Fetch a series, its seasons in ascending order and the episodes of every
season. Season episode lists are fetched concurrently. A filter, if given,
applies to the episodes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := getFilter()
		if err != nil {
			return err
		}

		client, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}

		series, seasons, err := fetchTree(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		for i := range seasons {
			seasons[i].Episodes = applyFilter(seasons[i].Episodes, f, (*filter.Filter).MatchEpisode)
		}

		out := struct {
			Series  schema.Series `json:"series"`
			Seasons []seasonTree  `json:"seasons"`
		}{series, seasons}
		return render(cmd, out, formatter().FormatTree(series, seasons))
	},
}

// fetchTree loads a series and its seasons, then the episodes of every
// season with bounded concurrency. Results keep season order.
func fetchTree(ctx context.Context, client roosterteeth.API, slug string) (schema.Series, []seasonTree, error) {
	series, err := client.GetSeries(ctx, slug)
	if err != nil {
		return schema.Series{}, nil, fmt.Errorf("failed to get series %s: %w", slug, err)
	}

	seasons, err := client.GetSeasons(ctx, slug, roosterteeth.OrderAsc)
	if err != nil {
		return schema.Series{}, nil, fmt.Errorf("failed to get seasons of %s: %w", slug, err)
	}

	tree := make([]seasonTree, len(seasons))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(treeConcurrency)

	for i, season := range seasons {
		g.Go(func() error {
			episodes, err := client.GetSeasonEpisodes(gctx, season.Attributes.Slug, roosterteeth.OrderAsc)
			if err != nil {
				return fmt.Errorf("failed to get episodes of %s: %w", season.Attributes.Slug, err)
			}

			logger.Debug().
				Str("season", season.Attributes.Slug).
				Int("episodes", len(episodes)).
				Msg("Fetched season episodes")

			// each goroutine owns its index
			tree[i] = seasonTree{Season: season, Episodes: episodes}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return schema.Series{}, nil, err
	}
	return series, tree, nil
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
