package selectors

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func root(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Find("body")
}

// TestTry_FirstMatchWins verifies descriptor ordering is honored
func TestTry_FirstMatchWins(t *testing.T) {
	sel := root(t, `<div class="a">alpha</div><div class="b">beta</div>`)

	m := Try(sel, []Descriptor{
		{Query: ".b"},
		{Query: ".a"},
	})

	require.NotNil(t, m)
	assert.Equal(t, "beta", strings.TrimSpace(m.Text()))
}

// TestTry_SkipsEmptyText verifies a matching element with empty text is
// rejected in favor of a later descriptor
func TestTry_SkipsEmptyText(t *testing.T) {
	sel := root(t, `<div class="a">   </div><div class="b">beta</div>`)

	m := Try(sel, []Descriptor{
		{Query: ".a"},
		{Query: ".b"},
	})

	require.NotNil(t, m)
	assert.Equal(t, "beta", strings.TrimSpace(m.Text()))
}

// TestTry_NoMatch verifies nil comes back when nothing resolves
func TestTry_NoMatch(t *testing.T) {
	sel := root(t, `<div class="a">alpha</div>`)

	assert.Nil(t, Try(sel, []Descriptor{{Query: ".missing"}}))
	assert.Nil(t, Try(sel, nil))
}

// TestTry_ContainsPredicate verifies case-insensitive text containment
func TestTry_ContainsPredicate(t *testing.T) {
	sel := root(t, `<span>nothing</span><span>Posted 3 Days Ago</span>`)

	m := Try(sel, []Descriptor{{Contains: "days ago", Scope: "span"}})

	require.NotNil(t, m)
	assert.Equal(t, "Posted 3 Days Ago", strings.TrimSpace(m.Text()))
}

// TestTry_ContainsDefaultScope verifies the wildcard scope default
func TestTry_ContainsDefaultScope(t *testing.T) {
	sel := root(t, `<div><em>reposted this</em></div>`)

	m := Try(sel, []Descriptor{{Contains: "reposted"}})

	require.NotNil(t, m)
}

// TestTry_InvalidSelectorFallsThrough verifies a broken head entry doesn't
// block the tail
func TestTry_InvalidSelectorFallsThrough(t *testing.T) {
	sel := root(t, `<div class="b">beta</div>`)

	m := Try(sel, []Descriptor{
		{Query: "div:nth-child("}, // malformed, expected to rot harmlessly
		{Query: ".b"},
	})

	require.NotNil(t, m)
	assert.Equal(t, "beta", strings.TrimSpace(m.Text()))
}

// TestMatches_PresenceOnly verifies Matches accepts text-empty elements
func TestMatches_PresenceOnly(t *testing.T) {
	sel := root(t, `<div class="update-components-reshare-header"></div>`)

	assert.True(t, Matches(sel, []Descriptor{{Query: ".update-components-reshare-header"}}))
	assert.False(t, Matches(sel, []Descriptor{{Query: ".missing"}}))
}

// TestTryEach_ValidatesCandidates verifies caller-side validation walks past
// rejected matches
func TestTryEach_ValidatesCandidates(t *testing.T) {
	sel := root(t, `<span class="x">not a time</span><span class="y">3d</span>`)

	var got string
	TryEach(sel, []Descriptor{{Query: ".x"}, {Query: ".y"}}, func(m *goquery.Selection) bool {
		text := strings.TrimSpace(m.Text())
		if text == "3d" {
			got = text
			return true
		}
		return false
	})

	assert.Equal(t, "3d", got)
}

// TestDefault_Shape sanity-checks the built-in registry
func TestDefault_Shape(t *testing.T) {
	reg := Default()

	assert.Equal(t, Version, reg.Version)
	assert.NotEmpty(t, reg.PostContainers)
	assert.NotEmpty(t, reg.CommentaryDiv)
	assert.NotEmpty(t, reg.ContentSpan)
	assert.NotEmpty(t, reg.AuthorName)
	assert.NotEmpty(t, reg.Reactions)
	assert.NotEmpty(t, reg.Comments)
	assert.NotEmpty(t, reg.TimeAgo)
	assert.NotEmpty(t, reg.RepostIndicators)
	assert.NotEmpty(t, reg.MediaContainers)
	assert.NotEmpty(t, reg.ShowMoreButtons)

	// Fragile specific entries lead, generic ones trail.
	first := reg.AuthorName[0].Query
	last := reg.AuthorName[len(reg.AuthorName)-1].Query
	assert.Greater(t, len(first), len(last))
}
