package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tmcewan/feedexport/post"
	"github.com/tmcewan/feedexport/selectors"
)

var (
	// timePattern matches spelled-out relative times ("3 days ago").
	timePattern = regexp.MustCompile(`(?i)\d+\s*(minute|hour|day|week|month|year)s?\s*ago`)
	// compactTimePattern matches the short feed form ("3d", "2h").
	compactTimePattern = regexp.MustCompile(`^\d+[mhdwy]$`)
)

// isTimeText reports whether text looks like a relative-time string.
func isTimeText(text string) bool {
	return timePattern.MatchString(text) ||
		compactTimePattern.MatchString(text) ||
		strings.Contains(text, "ago")
}

// extractTimestamp returns the post's machine timestamp when the page
// carries one, else raw time text, else "". No canonical format exists on
// the source side, so the value is opaque.
func (e *Extractor) extractTimestamp(container *goquery.Selection) string {
	if t := container.Find(e.reg.TimeElement).First(); t.Length() > 0 {
		if dt, ok := t.Attr("datetime"); ok && dt != "" {
			return dt
		}
		return strings.TrimSpace(t.Text())
	}

	if labeled := container.Find(e.reg.TimeAriaLabel).First(); labeled.Length() > 0 {
		return strings.TrimSpace(labeled.Text())
	}

	return ""
}

// extractTimeAgo resolves the human-relative time text. Registry candidates
// are validated against the relative-time patterns; if none validate, all
// spans are scanned for the first short string that matches. Falls back to
// the unknown-time sentinel.
func (e *Extractor) extractTimeAgo(container *goquery.Selection) string {
	var result string
	selectors.TryEach(container, e.reg.TimeAgo, func(m *goquery.Selection) bool {
		text := strings.TrimSpace(m.Text())
		if isTimeText(text) {
			e.debugf("time ago via selector: %s", text)
			result = text
			return true
		}
		return false
	})
	if result != "" {
		return result
	}

	container.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if timePattern.MatchString(text) && len(text) < 20 {
			e.debugf("time ago via pattern scan: %s", text)
			result = text
			return false
		}
		return true
	})
	if result != "" {
		return result
	}

	return post.UnknownTimeAgo
}

// extractRepostFlag reports whether the post looks like a repost: any
// repost-indicator descriptor matches, or the container's full text carries
// a known repost phrase. Best-effort; unrelated text containing a phrase
// produces a false positive and that is accepted.
func (e *Extractor) extractRepostFlag(container *goquery.Selection) bool {
	if selectors.Matches(container, e.reg.RepostIndicators) {
		e.debugf("repost indicator matched")
		return true
	}

	text := strings.ToLower(container.Text())
	for _, pattern := range selectors.RepostPatterns {
		if strings.Contains(text, pattern) {
			e.debugf("repost text pattern matched: %s", pattern)
			return true
		}
	}

	return false
}
