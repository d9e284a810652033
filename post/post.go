// Package post defines the data types produced by a feed extraction run.
package post

// MediaType classifies the media attached to a post. Component families the
// classifier does not know about degrade to a capitalized raw label, so
// values outside this set are possible but never empty.
type MediaType = string

// Known media types.
const (
	MediaNone     MediaType = "None"
	MediaImage    MediaType = "Image"
	MediaVideo    MediaType = "Video"
	MediaDocument MediaType = "Document"
	MediaArticle  MediaType = "Article"
	MediaPoll     MediaType = "Poll"
	MediaEvent    MediaType = "Event"
)

// UnknownTimeAgo is the sentinel used when no relative-time text could be
// found for a post.
const UnknownTimeAgo = "Unknown time"

// AuthorInfo holds the author details extracted from a post. Name is always
// non-empty when an AuthorInfo is present; the other fields are optional.
type AuthorInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProfileURL  string `json:"profile_url,omitempty"`
}

// Record is one extracted post. SequenceID is the 1-based position among
// extracted posts in document order, assigned at emission time and stable
// only within a single extraction run.
type Record struct {
	SequenceID     int         `json:"sequence_id"`
	Author         *AuthorInfo `json:"author,omitempty"`
	Timestamp      string      `json:"timestamp,omitempty"` // opaque: datetime attr or raw text
	TimeAgo        string      `json:"time_ago"`
	Content        string      `json:"content"` // normalized Markdown, non-empty
	ReactionsCount string      `json:"reactions_count"`
	CommentsCount  string      `json:"comments_count"`
	IsRepost       bool        `json:"is_repost"`
	MediaType      MediaType   `json:"media_type"`
}

// Phase identifies where the feed loader is in its lifecycle.
type Phase string

// Loader phases reported through ScrollProgress.
const (
	PhaseScrolling Phase = "scrolling"
	PhaseCompleted Phase = "completed"
)

// ScrollProgress is the ephemeral progress signal emitted while the feed
// loader runs. It is not persisted anywhere.
type ScrollProgress struct {
	Phase      Phase  `json:"phase"`
	PostsFound int    `json:"posts_found"`
	Message    string `json:"message"`
}
