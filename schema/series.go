package schema

import (
	"time"
)

// Series is a show. The API calls these "shows"; the endpoint paths keep
// that name while the type uses the catalog term.
type Series struct {
	Index          string               `json:"_index"`
	Sort           Optional[[]uint64]   `json:"sort"`
	ID             uint32               `json:"id"`
	Kind           string               `json:"type"`
	UUID           string               `json:"uuid"`
	Attributes     SeriesAttributes     `json:"attributes"`
	Links          SeriesLinks          `json:"links"`
	CanonicalLinks SeriesCanonicalLinks `json:"canonical_links"`
	Included       SeriesIncluded       `json:"included"`
}

// SeriesAttributes holds the catalog data of a series.
type SeriesAttributes struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Genres         []string `json:"genres"`
	IsSponsorsOnly bool     `json:"is_sponsors_only"`

	UpdatedAt           time.Time `json:"updated_at"`
	PublishedAt         time.Time `json:"published_at"`
	LastEpisodeGoliveAt time.Time `json:"last_episode_golive_at"`

	Summary      string `json:"summary"`
	Category     string `json:"category"`
	ChannelID    string `json:"channel_id"`
	ChannelSlug  string `json:"channel_slug"`
	SeasonCount  uint16 `json:"season_count"`
	EpisodeCount uint32 `json:"episode_count"`

	SeasonOrder  string `json:"season_order"`
	EpisodeOrder string `json:"episode_order"`

	BlacklistedCountries []string `json:"blacklisted_countries"`
}

// SeriesLinks are API links relative to the API origin.
type SeriesLinks struct {
	Reference            string           `json:"self"`
	Seasons              string           `json:"seasons"`
	BonusFeatures        string           `json:"bonus_features"`
	Related              string           `json:"related"`
	ProductCollections   string           `json:"product_collections"`
	LatestEpisode        string           `json:"latest_episode"`
	S1E1                 string           `json:"s1e1"`
	RichCardReferenceURL Optional[string] `json:"rich_card_reference_url"`
}

// SeriesCanonicalLinks are site links for humans.
type SeriesCanonicalLinks struct {
	Reference string `json:"self"`
	S1E1      string `json:"s1e1"`
}

type SeriesIncluded struct {
	Images []Image `json:"images"`
}

// HasRichCard reports whether the series advertises a rich card reference.
func (s *Series) HasRichCard() bool {
	return s.Links.RichCardReferenceURL.IsPresent()
}

// HasGenre reports whether genre is listed, ignoring case.
func (s *Series) HasGenre(genre string) bool {
	return containsFold(s.Attributes.Genres, genre)
}
