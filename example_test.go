package kitsu_test

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nero-extensions/kitsu"
	"github.com/nero-extensions/kitsu/middleware"
)

func ExampleNew() {
	ext, err := kitsu.New(
		kitsu.WithPageLimit(20),
		kitsu.WithMiddlewares(middleware.Logger(slog.Default())),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	page, err := ext.Search(context.Background(), "cowboy bebop", 1, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, series := range page.Series {
		fmt.Println(series.ID, series.Title)
	}
}

func ExampleClient() {
	cl := &kitsu.Client{}
	resp, err := cl.Send(context.Background(), kitsu.NewRequest("GET", "http://www.example.com/?a=b"))
	if err != nil {
		fmt.Println(err)
		return
	}
	text, err := resp.Text()
	fmt.Println(err)
	fmt.Println(text)
}
