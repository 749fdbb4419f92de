package schema

import (
	"time"
)

// Video is the playback descriptor of one episode, linked back to it through
// ContentID, ContentSlug and ContentUUID. The API only returns it to viewers
// entitled to watch the episode.
type Video struct {
	Index      string          `json:"_index"`
	Score      float32         `json:"_score"`
	ID         uint32          `json:"id"`
	Kind       string          `json:"type"`
	UUID       string          `json:"uuid"`
	Attributes VideoAttributes `json:"attributes"`
	Links      VideoLinks      `json:"links"`
}

type VideoAttributes struct {
	// URL is the HLS playlist.
	URL         string `json:"url"`
	ContentID   uint32 `json:"content_id"`
	ContentSlug string `json:"content_slug"`
	ContentUUID string `json:"content_uuid"`

	PublicGoliveAt  time.Time `json:"public_golive_at"`
	SponsorGoliveAt time.Time `json:"sponsor_golive_at"`
	MemberGoliveAt  time.Time `json:"member_golive_at"`

	MediaType       string             `json:"media_type"`
	MemberTier      string             `json:"member_tier"`
	Embed           bool               `json:"embed"`
	IsSponsorsOnly  bool               `json:"is_sponsors_only"`
	ImagePatternURL Optional[string]   `json:"image_pattern_url"`
	BifURL          Optional[string]   `json:"bif_url"`
	AdConfig        Optional[AdConfig] `json:"ad_config"`
}

// AdConfig is the advertising setup of a video.
type AdConfig struct {
	NW           string             `json:"nw"`
	CAID         string             `json:"caid"`
	AFID         string             `json:"afid"`
	Prof         string             `json:"prof"`
	AdTimestamps Optional[[]uint32] `json:"ad_timestamps"`
	Preroll      []string           `json:"preroll"`
	Midroll      []string           `json:"midroll"`
}

type VideoLinks struct {
	Reference string `json:"self"`
	Content   string `json:"content"`
	Download  string `json:"download"`
}

// HasAds reports whether the video carries an ad configuration.
func (v *Video) HasAds() bool {
	return v.Attributes.AdConfig.IsPresent()
}

// PlaysEpisode reports whether the video is the playback descriptor of ep.
func (v *Video) PlaysEpisode(ep Episode) bool {
	return v.Attributes.ContentID == ep.ID && v.Attributes.ContentUUID == ep.UUID
}
