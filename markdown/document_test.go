package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmcewan/feedexport/post"
)

func sampleRecords() []post.Record {
	return []post.Record{
		{
			SequenceID: 1,
			Author: &post.AuthorInfo{
				Name:        "Jane Doe",
				Description: "Engineer",
				ProfileURL:  "https://www.linkedin.com/in/jane-doe",
			},
			Timestamp:      "2024-01-15T10:00:00Z",
			TimeAgo:        "3d",
			Content:        "First post",
			ReactionsCount: "42",
			CommentsCount:  "7",
			IsRepost:       false,
			MediaType:      post.MediaImage,
		},
		{
			SequenceID:     2,
			TimeAgo:        post.UnknownTimeAgo,
			Content:        "Second post",
			ReactionsCount: "0",
			CommentsCount:  "0",
			IsRepost:       true,
			MediaType:      post.MediaNone,
		},
		{
			SequenceID:     3,
			Author:         &post.AuthorInfo{Name: "No Link"},
			TimeAgo:        "2 hours ago",
			Content:        "Third post",
			ReactionsCount: "1234",
			CommentsCount:  "5",
			MediaType:      post.MediaVideo,
		},
	}
}

// TestRenderDocument_Header verifies the header block
func TestRenderDocument_Header(t *testing.T) {
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := RenderDocument(sampleRecords(), "https://www.linkedin.com/feed/", date)

	assert.True(t, strings.HasPrefix(out, "# LinkedIn Posts Export\n\n"))
	assert.Contains(t, out, "**Source:** https://www.linkedin.com/feed/\n")
	assert.Contains(t, out, "**Exported:** 2024-03-01\n")
	assert.Contains(t, out, "**Total Posts:** 3\n")
}

// TestRenderDocument_ThreePosts verifies one level-2 section per record,
// each followed by a horizontal rule
func TestRenderDocument_ThreePosts(t *testing.T) {
	out := RenderDocument(sampleRecords(), "https://www.linkedin.com/feed/", time.Now())

	assert.Equal(t, 3, strings.Count(out, "\n## Post "))
	assert.Contains(t, out, "## Post 1\n")
	assert.Contains(t, out, "## Post 2\n")
	assert.Contains(t, out, "## Post 3\n")
	// Header rule plus one per post.
	assert.Equal(t, 4, strings.Count(out, "---\n"))
}

// TestRenderDocument_AuthorRendering verifies linked and plain author lines
func TestRenderDocument_AuthorRendering(t *testing.T) {
	out := RenderDocument(sampleRecords(), "x", time.Now())

	assert.Contains(t, out, "**Author:** [Jane Doe](https://www.linkedin.com/in/jane-doe)\n")
	assert.Contains(t, out, "**Author Description:** Engineer\n")
	assert.Contains(t, out, "**Author:** No Link\n")
}

// TestRenderDocument_TotalOverDefaults verifies defaulted fields always
// render
func TestRenderDocument_TotalOverDefaults(t *testing.T) {
	out := RenderDocument(sampleRecords(), "x", time.Now())

	// The authorless second record still renders every defaulted field.
	sections := strings.Split(out, "## Post 2\n")
	require.Len(t, sections, 2)
	section := strings.Split(sections[1], "---")[0]

	assert.Contains(t, section, "**Time Ago:** Unknown time\n")
	assert.Contains(t, section, "**Is Repost:** Yes\n")
	assert.Contains(t, section, "**Media Type:** None\n")
	assert.Contains(t, section, "**Reactions:** 0\n")
	assert.Contains(t, section, "**Comments:** 0\n")
	assert.NotContains(t, section, "**Author:**")
	assert.NotContains(t, section, "**Posted:**")
}

// TestRenderDocument_Empty verifies an empty run still renders a complete
// header
func TestRenderDocument_Empty(t *testing.T) {
	out := RenderDocument(nil, "https://www.linkedin.com/feed/", time.Now())

	assert.Contains(t, out, "**Total Posts:** 0\n")
	assert.Equal(t, 1, strings.Count(out, "---\n"))
}

// TestFilename verifies the export filename convention
func TestFilename(t *testing.T) {
	date := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "linkedin-posts-2024-03-01.md", Filename(date))
}
