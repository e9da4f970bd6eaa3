// Package kitsu implements a catalog extension backed by the Kitsu
// JSON:API. The heavy lifting lives in the stream-level HTTP client
// under internal/; this package issues one request per operation and
// maps the provider's schema into the extension types.
package kitsu

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/nero-extensions/kitsu/extension"
	"github.com/nero-extensions/kitsu/internal"
	"github.com/nero-extensions/kitsu/internal/errcode"
	"github.com/nero-extensions/kitsu/internal/model"
)

const (
	DefaultBaseURL   = "https://kitsu.io/api/edge"
	defaultPageLimit = 10
)

// Extension talks to one Kitsu-compatible endpoint. Construct with
// [New]; the zero value is not usable.
type Extension struct {
	client    *internal.Client
	baseURL   string
	pageLimit int
}

var _ extension.Extension = (*Extension)(nil)

// Option configures an Extension under construction.
type Option func(*Extension) error

// WithBaseURL points the extension at a different API root, mainly for
// tests and self-hosted mirrors.
func WithBaseURL(base string) Option {
	return func(e *Extension) error {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base URL %q is not absolute", base)
		}
		e.baseURL = base
		return nil
	}
}

// WithPageLimit overrides how many episodes one page requests.
func WithPageLimit(n int) Option {
	return func(e *Extension) error {
		if n <= 0 {
			return errors.New("page limit must be greater than zero")
		}
		e.pageLimit = n
		return nil
	}
}

// WithClient swaps the underlying HTTP client.
func WithClient(c *Client) Option {
	return func(e *Extension) error {
		if c == nil {
			return errors.New("client must not be nil")
		}
		e.client = c
		return nil
	}
}

// WithMiddlewares appends middlewares to the underlying client.
func WithMiddlewares(mws ...Middleware) Option {
	return func(e *Extension) error {
		e.client.Use(mws...)
		return nil
	}
}

func New(opts ...Option) (*Extension, error) {
	e := &Extension{
		client:    &internal.Client{},
		baseURL:   DefaultBaseURL,
		pageLimit: defaultPageLimit,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	return e, nil
}

// Register builds the extension and installs it as the process-wide
// provider.
func Register(opts ...Option) (*Extension, error) {
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := extension.Register(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Filters is not supported by this provider.
func (e *Extension) Filters(ctx context.Context) ([]extension.FilterCategory, error) {
	return nil, errcode.Internal("not implemented")
}

// Search queries the catalog by title. Kitsu's search endpoint is not
// paged by this extension, so the returned page never reports a
// follow-up page.
func (e *Extension) Search(ctx context.Context, query string, page int, filters []extension.SearchFilter) (extension.SeriesPage, error) {
	u := fmt.Sprintf("%s/anime?filter[text]=%s", e.baseURL, url.QueryEscape(query))
	var decoded searchResponse
	if err := e.getJSON(ctx, u, &decoded); err != nil {
		return extension.SeriesPage{}, err
	}

	series := make([]extension.Series, 0, len(decoded.Data))
	for _, anime := range decoded.Data {
		series = append(series, anime.series())
	}
	return extension.SeriesPage{Series: series, HasNextPage: false}, nil
}

func (e *Extension) GetSeriesInfo(ctx context.Context, seriesID string) (extension.Series, error) {
	u := fmt.Sprintf("%s/anime/%s", e.baseURL, url.PathEscape(seriesID))
	var decoded animeResponse
	if err := e.getJSON(ctx, u, &decoded); err != nil {
		return extension.Series{}, err
	}
	return decoded.Data.series(), nil
}

// GetSeriesEpisodes lists one page of episodes. Pages are 1-based; zero
// and one both mean the first page.
func (e *Extension) GetSeriesEpisodes(ctx context.Context, seriesID string, page int) (extension.EpisodesPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * e.pageLimit

	u := fmt.Sprintf("%s/episodes?filter[mediaId]=%s&page[limit]=%d&page[offset]=%d",
		e.baseURL, url.QueryEscape(seriesID), e.pageLimit, offset)
	var decoded episodesResponse
	if err := e.getJSON(ctx, u, &decoded); err != nil {
		return extension.EpisodesPage{}, err
	}

	episodes := make([]extension.Episode, 0, len(decoded.Data))
	for _, ep := range decoded.Data {
		episodes = append(episodes, ep.episode())
	}
	return extension.EpisodesPage{
		Episodes:    episodes,
		HasNextPage: decoded.Links != nil && decoded.Links.Next != nil,
	}, nil
}

// GetSeriesVideos is not supported by this provider.
func (e *Extension) GetSeriesVideos(ctx context.Context, seriesID, episodeID string) ([]extension.Video, error) {
	return nil, errcode.Internal("not implemented")
}

func (e *Extension) getJSON(ctx context.Context, url string, v interface{}) error {
	resp, err := e.client.Send(ctx, model.NewRequest("GET", url))
	if err != nil {
		return err
	}
	return resp.JSON(v)
}
