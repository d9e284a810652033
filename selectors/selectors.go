// Package selectors holds the versioned selector registry for the host
// page's markup, plus the first-match resolution helper shared by all field
// extractors.
//
// Each semantic field maps to an ordered list of descriptors, most specific
// first. The specific head entries are expected to rot as the host page's
// generated class names change; the broad structural tails are the
// load-bearing part.
package selectors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Version identifies the registry revision bundled with this build. Override
// files (see LoadOverrides) carry their own version string.
const Version = "2024.2"

// Descriptor is one candidate query for a semantic field. Exactly one of
// Query or Contains is set: Query is a structural CSS selector; Contains is
// a case-insensitive text-containment predicate evaluated over elements
// matching Scope (default "*").
type Descriptor struct {
	Query    string `yaml:"query,omitempty" json:"query,omitempty"`
	Contains string `yaml:"contains,omitempty" json:"contains,omitempty"`
	Scope    string `yaml:"scope,omitempty" json:"scope,omitempty"`
}

// Registry maps each semantic field to its ordered descriptor list.
type Registry struct {
	Version string

	// Post structure
	PostContainers string
	CommentaryDiv  string
	ContentSpan    string

	// Author
	AuthorName        []Descriptor
	AuthorDescription []Descriptor
	AuthorProfileLink string

	// Engagement
	Reactions []Descriptor
	Comments  []Descriptor

	// Time and metadata
	TimeElement   string
	TimeAriaLabel string
	TimeAgo       []Descriptor

	RepostIndicators []Descriptor

	// Media
	MediaContainers      []Descriptor
	MediaFallbackVideo   string
	MediaFallbackImage   string
	MediaFallbackDoc     string
	ActorRegion          string

	// Feed loading. LoadingIndicators is resolved by any Page binding;
	// ShowMoreButtons is for live-page bindings, since a static snapshot's
	// controls are inert.
	ShowMoreButtons   []Descriptor
	LoadingIndicators string
}

// RepostPatterns are the phrases whose presence anywhere in a post's text
// marks it as a repost. Coarse heuristic; false positives are accepted.
var RepostPatterns = []string{
	"reposted this",
	"shared this",
	"reshared this",
	"reposted by",
	"shared by",
	"originally posted by",
}

// Default returns the registry for the host page's current markup.
func Default() *Registry {
	return &Registry{
		Version: Version,

		PostContainers: ".fie-impression-container",
		CommentaryDiv:  ".update-components-text.update-components-update-v2__commentary",
		ContentSpan:    `span[dir="ltr"]`,

		AuthorName: []Descriptor{
			{Query: "div.fie-impression-container div.relative div.update-components-actor--with-control-menu div div a span.update-components-actor__title span.hoverable-link-text.t-14.t-bold span span:nth-child(1)"},
			{Query: ".update-components-actor__title span span:nth-child(1)"},
			{Query: ".update-components-actor__title span span:first-child"},
			{Query: ".update-components-actor__title .hoverable-link-text span:first-child"},
			{Query: ".update-components-actor__single-line-truncate span span:first-child"},
		},
		AuthorDescription: []Descriptor{
			{Query: "div.fie-impression-container div.relative div.update-components-actor--with-control-menu div div a span.update-components-actor__description.text-body-xsmall span:nth-child(1)"},
			{Query: ".update-components-actor__description span:nth-child(1)"},
			{Query: ".update-components-actor__description span:first-child"},
			{Query: ".update-components-actor__description.text-body-xsmall span:first-child"},
		},
		AuthorProfileLink: `a[href*="/in/"]`,

		Reactions: []Descriptor{
			{Query: ".social-details-social-counts--no-vertical-padding ul li.social-details-social-counts__reactions--left-aligned > button > span"},
			{Query: ".social-details-social-counts__reactions > button > span"},
			{Query: ".social-details-social-counts__reactions button span"},
			{Query: ".social-details-social-counts__item--reactions button span"},
			{Query: `li[class*="reactions"] button span`},
		},
		Comments: []Descriptor{
			{Query: ".social-details-social-counts--no-vertical-padding ul li.social-details-social-counts__comments--right-aligned > button > span"},
			{Query: ".social-details-social-counts__comments > button > span"},
			{Query: ".social-details-social-counts__comments button span"},
			{Query: ".social-details-social-counts__item--comments button span"},
			{Query: `li[class*="comments"] button span`},
		},

		TimeElement:   "time",
		TimeAriaLabel: `[aria-label*="ago"]`,
		TimeAgo: []Descriptor{
			{Query: ".update-components-actor span span:nth-child(1)"},
			{Query: ".update-components-actor__meta span:first-child"},
			{Query: ".feed-shared-actor__meta span:first-child"},
			{Query: ".update-components-actor .visually-hidden + span"},
			{Contains: "ago", Scope: `span[aria-hidden="true"]`},
			{Contains: "hour", Scope: "span"},
			{Contains: "day", Scope: "span"},
			{Contains: "week", Scope: "span"},
			{Contains: "month", Scope: "span"},
			{Contains: "year", Scope: "span"},
		},

		RepostIndicators: []Descriptor{
			{Query: ".update-components-header.update-components-header--with-control-menu.update-components-header--with-divider"},
			{Query: ".update-components-header--with-divider"},
			{Query: ".update-components-header.pt2.t-12.t-black--light"},
			{Query: ".update-components-reshare-header"},
			{Query: ".feed-shared-update-v2__header"},
			{Contains: "reposted"},
			{Contains: "shared"},
			{Contains: "reshared"},
		},

		MediaContainers: []Descriptor{
			{Query: ".feed-shared-update-v2__content"},
			{Query: ".update-components-content"},
			{Query: ".fie-impression-container > div:not(.relative)"},
		},
		MediaFallbackVideo: "video, [data-video-id], [data-video-url]",
		MediaFallbackImage: "img[src], [data-image-id], [data-image-url]",
		MediaFallbackDoc:   `[data-document-id], .document-preview, [href$=".pdf"]`,
		ActorRegion:        ".update-components-actor",

		ShowMoreButtons: []Descriptor{
			{Query: `button[aria-label*="Show more"]`},
			{Query: `button[aria-label*="See more"]`},
			{Contains: "show more results", Scope: "button"},
			{Contains: "see more posts", Scope: "button"},
			{Query: ".scaffold-finite-scroll__load-button"},
			{Contains: "show", Scope: ".artdeco-button--secondary"},
			{Query: `button[data-test-pagination-page-btn="next"]`},
		},
		LoadingIndicators: `.artdeco-spinner, .skeleton-loader, [data-placeholder="loading"]`,
	}
}

// find evaluates one descriptor scoped to root. Invalid structural queries
// are swallowed (the next descriptor gets its chance), matching the
// per-selector fault tolerance the extraction pipeline needs against a
// hand-maintained registry.
func find(root *goquery.Selection, d Descriptor) (sel *goquery.Selection) {
	defer func() {
		if recover() != nil {
			sel = nil
		}
	}()

	if d.Contains != "" {
		scope := d.Scope
		if scope == "" {
			scope = "*"
		}
		needle := strings.ToLower(d.Contains)
		var found *goquery.Selection
		root.Find(scope).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(s.Text()), needle) {
				found = s
				return false
			}
			return true
		})
		return found
	}

	if m := root.Find(d.Query).First(); m.Length() > 0 {
		return m
	}
	return nil
}

// Try resolves a field by walking its descriptor list in order and returning
// the first match whose trimmed text is non-empty. Returns nil if no
// descriptor matches.
func Try(root *goquery.Selection, descs []Descriptor) *goquery.Selection {
	for _, d := range descs {
		if m := find(root, d); m != nil && strings.TrimSpace(m.Text()) != "" {
			return m
		}
	}
	return nil
}

// Matches reports whether any descriptor finds an element at all, regardless
// of its text content. Used for presence-only fields like the repost flag.
func Matches(root *goquery.Selection, descs []Descriptor) bool {
	for _, d := range descs {
		if find(root, d) != nil {
			return true
		}
	}
	return false
}

// TryEach returns every descriptor's match in order, skipping descriptors
// that do not resolve. Callers that validate candidates themselves (the
// time-ago extractor) use this instead of Try.
func TryEach(root *goquery.Selection, descs []Descriptor, fn func(*goquery.Selection) bool) {
	for _, d := range descs {
		if m := find(root, d); m != nil {
			if fn(m) {
				return
			}
		}
	}
}
