// Package report renders an HTML engagement report for an extraction run:
// per-post reaction/comment bars, a media-type breakdown, and the summary
// counts.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tmcewan/feedexport/post"
)

// Summary aggregates a run's records.
type Summary struct {
	TotalPosts    int `json:"total_posts"`
	ImagePosts    int `json:"image_posts"`
	VideoPosts    int `json:"video_posts"`
	Reposts       int `json:"reposts"`
	OriginalPosts int `json:"original_posts"`
}

// Summarize computes summary counts over extracted records.
func Summarize(records []post.Record) Summary {
	s := Summary{TotalPosts: len(records)}
	for _, r := range records {
		switch r.MediaType {
		case post.MediaImage:
			s.ImagePosts++
		case post.MediaVideo:
			s.VideoPosts++
		}
		if r.IsRepost {
			s.Reposts++
		}
	}
	s.OriginalPosts = s.TotalPosts - s.Reposts
	return s
}

// Write renders the engagement report as HTML.
func Write(w io.Writer, records []post.Record, title string) error {
	if err := engagementBar(records, title).Render(w); err != nil {
		return fmt.Errorf("failed to render engagement chart: %w", err)
	}
	if err := mediaPie(records).Render(w); err != nil {
		return fmt.Errorf("failed to render media chart: %w", err)
	}
	return nil
}

func engagementBar(records []post.Record, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Engagement per post"}),
	)

	var (
		labels    []string
		reactions []opts.BarData
		comments  []opts.BarData
	)
	for _, r := range records {
		labels = append(labels, fmt.Sprintf("Post %d", r.SequenceID))
		reactions = append(reactions, opts.BarData{Value: parseCount(r.ReactionsCount)})
		comments = append(comments, opts.BarData{Value: parseCount(r.CommentsCount)})
	}

	bar.SetXAxis(labels).
		AddSeries("Reactions", reactions).
		AddSeries("Comments", comments)
	return bar
}

func mediaPie(records []post.Record) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Media Types"}),
	)

	counts := make(map[string]int)
	for _, r := range records {
		counts[r.MediaType]++
	}

	var items []opts.PieData
	for mt, n := range counts {
		items = append(items, opts.PieData{Name: mt, Value: n})
	}
	pie.AddSeries("Posts", items)
	return pie
}

// parseCount converts a digit-string count to an int; the extractor
// guarantees digits only, but hand-built records get a zero fallback.
func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
