package schema

import (
	"github.com/samber/lo"
)

// Page is the envelope every list endpoint wraps its records in.
// The pagination fields are only populated by list calls; single-record
// lookups return the same envelope without them.
type Page[T any] struct {
	Data         []T              `json:"data"`
	Page         Optional[uint16] `json:"page"`
	PerPage      Optional[uint16] `json:"per_page"`
	TotalPages   Optional[uint16] `json:"total_pages"`
	TotalResults Optional[uint32] `json:"total_results"`
}

// First returns the first record, which is how single-record endpoints
// deliver their result.
func (p *Page[T]) First() (T, bool) {
	if len(p.Data) == 0 {
		var zero T
		return zero, false
	}
	return p.Data[0], true
}

// HasPagination reports whether any pagination metadata was sent.
func (p *Page[T]) HasPagination() bool {
	return p.Page.IsPresent() || p.PerPage.IsPresent() ||
		p.TotalPages.IsPresent() || p.TotalResults.IsPresent()
}

// HasMorePages reports whether a later page exists.
func (p *Page[T]) HasMorePages() bool {
	page, ok := p.Page.Get()
	if !ok {
		return false
	}
	return page < p.TotalPages.OrElse(0)
}

// Image is one artwork entry of an included image set.
type Image struct {
	ID         uint32          `json:"id"`
	UUID       string          `json:"uuid"`
	Kind       string          `json:"type"`
	Attributes ImageAttributes `json:"attributes"`
}

// ImageAttributes holds the size variants of an image.
type ImageAttributes struct {
	Thumb       string `json:"thumb"`
	Small       string `json:"small"`
	Medium      string `json:"medium"`
	Large       string `json:"large"`
	Orientation string `json:"orientation"`
	ImageType   string `json:"image_type"`
}

// Tag is a free-form label attached to an episode.
type Tag struct {
	ID         string        `json:"id"`
	UUID       string        `json:"uuid"`
	Kind       string        `json:"type"`
	Attributes TagAttributes `json:"attributes"`
}

type TagAttributes struct {
	Tag  string `json:"tag"`
	Slug string `json:"slug"`
}

// CastMember is a person credited on an episode.
type CastMember struct {
	ID         uint32               `json:"id"`
	UUID       string               `json:"uuid"`
	Kind       string               `json:"type"`
	Attributes CastMemberAttributes `json:"attributes"`
}

type CastMemberAttributes struct {
	DisplayName string `json:"display_name"`
}

// ImageOfType returns the first image whose image_type matches kind,
// e.g. "cover", "logo" or "profile".
func ImageOfType(images []Image, kind string) (Image, bool) {
	return lo.Find(images, func(img Image) bool {
		return img.Attributes.ImageType == kind
	})
}
