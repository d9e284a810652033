package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tmcewan/feedexport/post"
)

// componentClassPattern matches the host page's structural component class
// tokens, which encode the media kind ("update-components-image--carousel").
var (
	componentClassPattern = regexp.MustCompile(`update-components-[^\s]+`)
	componentTypePattern  = regexp.MustCompile(`update-components-([^-_\s]+)`)
)

// extractMediaType classifies the media attached to a post. It locates the
// media container, scans it and its descendants for component class tokens,
// and falls back to tag/attribute heuristics when no token classifies.
// Unknown component families degrade to a capitalized keyword label instead
// of being dropped.
func (e *Extractor) extractMediaType(container *goquery.Selection) post.MediaType {
	var mediaContainer *goquery.Selection
	for _, d := range e.reg.MediaContainers {
		if m := container.Find(d.Query).First(); m.Length() > 0 {
			e.debugf("media container via: %s", d.Query)
			mediaContainer = m
			break
		}
	}
	if mediaContainer == nil {
		return post.MediaNone
	}

	// The container itself first, then descendants in document order; first
	// classified token wins.
	if mt := detectMediaFromClasses(mediaContainer.AttrOr("class", "")); mt != post.MediaNone {
		return mt
	}
	result := post.MediaNone
	mediaContainer.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if mt := detectMediaFromClasses(s.AttrOr("class", "")); mt != post.MediaNone {
			result = mt
			return false
		}
		return true
	})
	if result != post.MediaNone {
		return result
	}

	return e.fallbackMediaChecks(mediaContainer)
}

// detectMediaFromClasses classifies a single element by its component class
// tokens.
func detectMediaFromClasses(classes string) post.MediaType {
	for _, match := range componentClassPattern.FindAllString(classes, -1) {
		componentType := extractComponentType(match)
		if componentType == "" {
			continue
		}
		if mt := mapComponentType(componentType); mt != post.MediaNone {
			return mt
		}
	}
	return post.MediaNone
}

// extractComponentType pulls the media keyword out of one component class
// token. Known keyword families are matched by containment; anything else
// yields the first word after the component prefix.
func extractComponentType(match string) string {
	switch {
	case strings.Contains(match, "update-components-linkedin-video"):
		return "linkedin-video"
	case strings.Contains(match, "update-components-document"):
		return "document"
	case strings.Contains(match, "update-components-image"):
		return "image"
	case strings.Contains(match, "update-components-video"):
		return "video"
	case strings.Contains(match, "update-components-article"):
		return "article"
	case strings.Contains(match, "update-components-poll"):
		return "poll"
	case strings.Contains(match, "update-components-event"):
		return "event"
	}
	if m := componentTypePattern.FindStringSubmatch(match); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

// mapComponentType maps a component keyword to a media type. Single images
// and carousels both map to Image; unknown keywords come back capitalized.
func mapComponentType(componentType string) post.MediaType {
	switch componentType {
	case "image":
		return post.MediaImage
	case "linkedin-video", "linkedin", "video":
		return post.MediaVideo
	case "document":
		return post.MediaDocument
	case "article":
		return post.MediaArticle
	case "poll":
		return post.MediaPoll
	case "event":
		return post.MediaEvent
	default:
		return capitalize(componentType)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// fallbackMediaChecks handles posts whose media carries no component class:
// video elements or video-data attributes, content images that are not
// profile shots or icons, document attributes or PDF links.
func (e *Extractor) fallbackMediaChecks(mediaContainer *goquery.Selection) post.MediaType {
	if mediaContainer.Find(e.reg.MediaFallbackVideo).Length() > 0 {
		e.debugf("media via video fallback")
		return post.MediaVideo
	}

	found := post.MediaNone
	mediaContainer.Find(e.reg.MediaFallbackImage).EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if e.isContentImage(img) {
			e.debugf("media via image fallback")
			found = post.MediaImage
			return false
		}
		return true
	})
	if found != post.MediaNone {
		return found
	}

	if mediaContainer.Find(e.reg.MediaFallbackDoc).Length() > 0 {
		e.debugf("media via document fallback")
		return post.MediaDocument
	}

	return post.MediaNone
}

// isContentImage filters out profile pictures, icons, and other UI images.
func (e *Extractor) isContentImage(img *goquery.Selection) bool {
	src := img.AttrOr("src", "")
	alt := img.AttrOr("alt", "")

	return !strings.Contains(src, "profile-displayphoto") &&
		!strings.Contains(src, "icon") &&
		!strings.Contains(strings.ToLower(alt), "profile") &&
		img.Closest(e.reg.ActorRegion).Length() == 0
}
