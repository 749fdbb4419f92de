package schema

import (
	"time"
)

// Season belongs to exactly one series, referenced by ShowID and ShowSlug.
type Season struct {
	Index      string             `json:"_index"`
	Sort       Optional[[]uint16] `json:"sort"`
	ID         uint32             `json:"id"`
	Kind       string             `json:"type"`
	UUID       string             `json:"uuid"`
	Attributes SeasonAttributes   `json:"attributes"`
	Links      SeasonLinks        `json:"links"`
	Included   SeasonIncluded     `json:"included"`
}

type SeasonAttributes struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Slug              string            `json:"slug"`
	Number            uint16            `json:"number"`
	ShowID            string            `json:"show_id"`
	ShowSlug          string            `json:"show_slug"`
	EpisodesAvailable EpisodesAvailable `json:"episodes_available"`
	PublishedAt       time.Time         `json:"published_at"`
}

// EpisodesAvailable flags which audience tiers can watch any episode of the season.
type EpisodesAvailable struct {
	Sponsor bool `json:"sponsor"`
	Member  bool `json:"member"`
	Public  bool `json:"public"`
}

type SeasonLinks struct {
	Reference string `json:"self"`
	Episodes  string `json:"episodes"`
}

type SeasonIncluded struct {
	Images []Image `json:"images"`
}
