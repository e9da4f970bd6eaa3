package extension_test

import (
	"context"
	"testing"

	"github.com/nero-extensions/kitsu/extension"
	"github.com/nero-extensions/kitsu/internal/errcode"
	"github.com/nero-extensions/kitsu/internal/model"
)

type stubExtension struct{}

func (stubExtension) Filters(context.Context) ([]extension.FilterCategory, error) { return nil, nil }
func (stubExtension) Search(context.Context, string, int, []extension.SearchFilter) (extension.SeriesPage, error) {
	return extension.SeriesPage{}, nil
}
func (stubExtension) GetSeriesInfo(context.Context, string) (extension.Series, error) {
	return extension.Series{}, nil
}
func (stubExtension) GetSeriesEpisodes(context.Context, string, int) (extension.EpisodesPage, error) {
	return extension.EpisodesPage{}, nil
}
func (stubExtension) GetSeriesVideos(context.Context, string, string) ([]extension.Video, error) {
	return nil, nil
}

func TestRegisterOnce(t *testing.T) {
	if _, ok := extension.Registered(); ok {
		t.Fatal("an extension is registered before any Register call")
	}
	if err := extension.Register(nil); err == nil {
		t.Error("nil extension should be rejected")
	}
	if err := extension.Register(stubExtension{}); err != nil {
		t.Fatal(err)
	}
	if _, ok := extension.Registered(); !ok {
		t.Error("Registered lost the extension")
	}
	if err := extension.Register(stubExtension{}); err == nil {
		t.Error("second Register should fail")
	}
}

func TestBoundaryError(t *testing.T) {
	code := errcode.Code{Kind: errcode.ConnectionTimeout, Context: "kitsu.io:443"}

	// transport failures keep their code across the boundary
	if got := extension.BoundaryError(model.TransportError(code)); got != code {
		t.Errorf("transport round-trip = %v, want %v", got, code)
	}

	// other kinds collapse into an internal error with the message
	_, err := model.NewRequest("GET", "http://example.com/").WithHeader("bad name", "v")
	got := extension.BoundaryError(err)
	if got.Kind != errcode.InternalError {
		t.Errorf("kind = %v, want InternalError", got.Kind)
	}
	if got.Context == "" {
		t.Error("context should carry the rendered message")
	}
}
