package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotPage(t *testing.T, html string) *SnapshotPage {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return NewSnapshotPage(doc, nil)
}

func TestSnapshotPagePostCount(t *testing.T) {
	page := snapshotPage(t, `
		<div class="fie-impression-container"></div>
		<div class="fie-impression-container"></div>`)

	n, err := page.PostCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSnapshotPageLoadingIndicators(t *testing.T) {
	page := snapshotPage(t, `
		<div class="fie-impression-container"></div>
		<div class="artdeco-spinner"></div>
		<div class="skeleton-loader"></div>`)

	n, err := page.LoadingIndicatorCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// TestSnapshotPageConverges verifies the scroller completes in one pass on
// a static document, even when inert load-more markup and a never-clearing
// spinner are present
func TestSnapshotPageConverges(t *testing.T) {
	page := snapshotPage(t, `
		<div class="fie-impression-container"></div>
		<div class="artdeco-spinner"></div>
		<button aria-label="Show more results">Show more results</button>`)
	s := newTestScroller(page)

	count, err := s.LoadAll(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, Completed, s.State())
}
