package kitsu

import (
	"github.com/nero-extensions/kitsu/extension"
	"github.com/nero-extensions/kitsu/internal/model"
)

// Kitsu wraps every payload in a JSON:API envelope. Only the pieces the
// extension consumes are modeled: data, and the pagination links on
// collection responses.
type apiResponse[T any] struct {
	Data  T         `json:"data"`
	Links *apiLinks `json:"links"`
}

type apiLinks struct {
	Next *string `json:"next"`
}

type (
	searchResponse   = apiResponse[[]animeData]
	animeResponse    = apiResponse[animeData]
	episodesResponse = apiResponse[[]episodeData]
)

type animeData struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes animeAttributes `json:"attributes"`
}

// canonicalTitle is always present on anime records; images and their
// variants are not.
type animeAttributes struct {
	CanonicalTitle string         `json:"canonicalTitle"`
	Synopsis       string         `json:"synopsis"`
	PosterImage    *imageResource `json:"posterImage"`
}

type episodeData struct {
	ID         string            `json:"id"`
	Attributes episodeAttributes `json:"attributes"`
}

// episodes may lack a canonicalTitle, unlike anime records.
type episodeAttributes struct {
	Number         int            `json:"number"`
	CanonicalTitle string         `json:"canonicalTitle"`
	Synopsis       string         `json:"synopsis"`
	Thumbnail      *imageResource `json:"thumbnail"`
}

type imageResource struct {
	Original string `json:"original"`
}

// resource turns an image URL into a prepared GET descriptor the host
// can fetch on its own. Unparseable URLs degrade to no resource.
func (img *imageResource) resource() *extension.Resource {
	if img == nil || img.Original == "" {
		return nil
	}
	pr, err := model.NewRequest("GET", img.Original).Prepare()
	if err != nil {
		return nil
	}
	return pr
}

func (a animeData) series() extension.Series {
	return extension.Series{
		ID:       a.ID,
		Title:    a.Attributes.CanonicalTitle,
		Poster:   a.Attributes.PosterImage.resource(),
		Synopsis: a.Attributes.Synopsis,
		Type:     a.Type,
	}
}

func (ep episodeData) episode() extension.Episode {
	return extension.Episode{
		ID:          ep.ID,
		Number:      ep.Attributes.Number,
		Title:       ep.Attributes.CanonicalTitle,
		Description: ep.Attributes.Synopsis,
		Thumbnail:   ep.Attributes.Thumbnail.resource(),
	}
}
