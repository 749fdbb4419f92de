package roosterteeth

import (
	"context"

	"github.com/s0up4200/roosterteeth/schema"
)

// API defines the interface for Rooster Teeth catalog operations
type API interface {
	// ListChannels retrieves every channel
	ListChannels(ctx context.Context) ([]schema.Channel, error)

	// ListEpisodes retrieves one page of up to 100 episodes
	ListEpisodes(ctx context.Context, page uint16, opts ListOptions) ([]schema.Episode, error)

	// ListSeries retrieves up to 1000 series
	ListSeries(ctx context.Context, opts ListOptions) ([]schema.Series, error)

	// GetSeasons retrieves the seasons of a series
	GetSeasons(ctx context.Context, seriesSlug string, order Order) ([]schema.Season, error)

	// GetSeasonEpisodes retrieves the episodes of a season
	GetSeasonEpisodes(ctx context.Context, seasonSlug string, order Order) ([]schema.Episode, error)

	// GetSeries retrieves a series by slug
	GetSeries(ctx context.Context, slug string) (schema.Series, error)

	// GetEpisode retrieves an episode by slug
	GetEpisode(ctx context.Context, slug string) (schema.Episode, error)

	// GetVideo retrieves the playback descriptor of an episode
	GetVideo(ctx context.Context, slug string) (schema.Video, error)
}

// Paginator exposes the pagination metadata of the episode list
type Paginator interface {
	// EpisodesPage fetches a single page of episodes with its metadata
	EpisodesPage(ctx context.Context, page uint16, opts ListOptions) (*schema.Page[schema.Episode], error)
}

var (
	_ API       = (*Client)(nil)
	_ Paginator = (*Client)(nil)
)
