package schema

// Channel is a content brand such as "rooster-teeth" or "achievement-hunter".
// Its slug is what the list endpoints accept as a channel filter.
type Channel struct {
	Index      string             `json:"_index"`
	Kind       string             `json:"type"`
	Sort       Optional[[]uint16] `json:"sort"`
	ID         uint16             `json:"id"`
	UUID       string             `json:"uuid"`
	Attributes ChannelAttributes  `json:"attributes"`
	Included   ChannelIncluded    `json:"included"`
	Links      ChannelLinks       `json:"links"`
}

// ChannelAttributes holds the display data of a channel.
type ChannelAttributes struct {
	Name       string `json:"name"`
	Importance uint16 `json:"importance"`
	Slug       string `json:"slug"`
	BrandColor string `json:"brand_color"`
}

type ChannelIncluded struct {
	Images []Image `json:"images"`
}

// ChannelLinks point at the collections that belong to a channel.
type ChannelLinks struct {
	Reference          string `json:"self"`
	Shows              string `json:"shows"`
	Movies             string `json:"movies"`
	ProductCollections string `json:"product_collections"`
	FeaturedItems      string `json:"featured_items"`
	Episodes           string `json:"episodes"`
	Livestreams        string `json:"livestreams"`
}
