package extension

import (
	"github.com/nero-extensions/kitsu/internal/model"
)

// Resource is a prepared GET request the host can execute to fetch an
// auxiliary asset such as a poster or thumbnail image.
type Resource = model.PreparedRequest

// Series is a provider-agnostic catalog entry. Optional string fields
// are empty when the provider has nothing for them.
type Series struct {
	ID       string
	Title    string
	Poster   *Resource
	Synopsis string
	Type     string
}

type SeriesPage struct {
	Series      []Series
	HasNextPage bool
}

type Episode struct {
	ID          string
	Number      int
	Title       string
	Description string
	Thumbnail   *Resource
}

type EpisodesPage struct {
	Episodes    []Episode
	HasNextPage bool
}

// Video is a playable stream for one episode.
type Video struct {
	URL        string
	Server     string
	Resolution string
}

// FilterCategory groups the search filters a provider understands.
type FilterCategory struct {
	ID          string
	DisplayName string
	Filters     []Filter
}

type Filter struct {
	ID          string
	DisplayName string
}

// SearchFilter is a filter selection applied to a search call.
type SearchFilter struct {
	ID     string
	Values []string
}
