package markdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/tmcewan/feedexport/post"
)

// FilenamePrefix is the stem of generated export filenames.
const FilenamePrefix = "linkedin-posts"

// Filename returns the conventional export filename for the given date:
// linkedin-posts-<ISO-date>.md.
func Filename(date time.Time) string {
	return fmt.Sprintf("%s-%s.md", FilenamePrefix, date.Format("2006-01-02"))
}

// RenderDocument serializes extracted records into a single Markdown
// document: a header block followed by one section per record in sequence
// order. Rendering is total: defaulted fields ("0" counts, "None" media,
// the unknown-time sentinel) always appear; truly optional fields (author,
// description, timestamp) appear only when present.
func RenderDocument(records []post.Record, sourceURL string, date time.Time) string {
	var b strings.Builder

	b.WriteString("# LinkedIn Posts Export\n\n")
	fmt.Fprintf(&b, "**Source:** %s\n", sourceURL)
	fmt.Fprintf(&b, "**Exported:** %s\n", date.Format("2006-01-02"))
	fmt.Fprintf(&b, "**Total Posts:** %d\n\n", len(records))
	b.WriteString("---\n\n")

	for _, r := range records {
		renderPost(&b, r)
		b.WriteString("---\n\n")
	}

	return b.String()
}

func renderPost(b *strings.Builder, r post.Record) {
	fmt.Fprintf(b, "## Post %d\n\n", r.SequenceID)

	if r.Author != nil {
		if r.Author.ProfileURL != "" {
			fmt.Fprintf(b, "**Author:** [%s](%s)\n", r.Author.Name, r.Author.ProfileURL)
		} else {
			fmt.Fprintf(b, "**Author:** %s\n", r.Author.Name)
		}
		if r.Author.Description != "" {
			fmt.Fprintf(b, "**Author Description:** %s\n", r.Author.Description)
		}
	}

	if r.Timestamp != "" {
		fmt.Fprintf(b, "**Posted:** %s\n", r.Timestamp)
	}
	fmt.Fprintf(b, "**Time Ago:** %s\n", orDefault(r.TimeAgo, post.UnknownTimeAgo))
	fmt.Fprintf(b, "**Is Repost:** %s\n", yesNo(r.IsRepost))
	fmt.Fprintf(b, "**Media Type:** %s\n", orDefault(r.MediaType, post.MediaNone))
	fmt.Fprintf(b, "**Reactions:** %s\n", orDefault(r.ReactionsCount, "0"))
	fmt.Fprintf(b, "**Comments:** %s\n", orDefault(r.CommentsCount, "0"))

	fmt.Fprintf(b, "\n%s\n\n", r.Content)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
