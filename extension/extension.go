// Package extension defines the capability surface a catalog provider
// exposes to the host: searching for series, fetching series details,
// listing episodes and resolving videos. One implementation is
// registered process-wide at start; calls are stateless beyond the
// network I/O they perform.
package extension

import (
	"context"
	"errors"
	"sync"

	"github.com/nero-extensions/kitsu/internal/errcode"
)

// ErrorCode is the transport-level error code the host understands.
// BoundaryError flattens any error coming out of an Extension into one.
type ErrorCode = errcode.Code

// BoundaryError maps err for the host: a transport failure keeps its
// original code, everything else collapses into an internal-error code
// carrying the rendered message.
func BoundaryError(err error) ErrorCode {
	return errcode.From(err)
}

// Extension is implemented by a provider. Page numbers are 1-based;
// zero means the first page.
type Extension interface {
	Filters(ctx context.Context) ([]FilterCategory, error)
	Search(ctx context.Context, query string, page int, filters []SearchFilter) (SeriesPage, error)
	GetSeriesInfo(ctx context.Context, seriesID string) (Series, error)
	GetSeriesEpisodes(ctx context.Context, seriesID string, page int) (EpisodesPage, error)
	GetSeriesVideos(ctx context.Context, seriesID, episodeID string) ([]Video, error)
}

var (
	mu         sync.Mutex
	registered Extension
)

// Register installs the process-wide extension implementation. It is
// called once at process start; registering twice is an error.
func Register(e Extension) error {
	if e == nil {
		return errors.New("extension must not be nil")
	}
	mu.Lock()
	defer mu.Unlock()
	if registered != nil {
		return errors.New("an extension is already registered")
	}
	registered = e
	return nil
}

// Registered returns the installed extension, if any.
func Registered() (Extension, bool) {
	mu.Lock()
	defer mu.Unlock()
	return registered, registered != nil
}
