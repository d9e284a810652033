package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tmcewan/feedexport/selectors"
)

// countPattern matches the first digit run in an element's text, allowing
// embedded thousands separators ("1,234 reactions").
var countPattern = regexp.MustCompile(`\d+(?:,\d+)*`)

// extractCount resolves an engagement counter via its descriptor list and
// pulls the leading number out of the matched text. Defaults to "0" when no
// element or no digit run is found, never empty.
func (e *Extractor) extractCount(container *goquery.Selection, descs []selectors.Descriptor) string {
	m := selectors.Try(container, descs)
	if m == nil {
		return "0"
	}
	return extractNumber(m.Text())
}

func (e *Extractor) extractReactionsCount(container *goquery.Selection) string {
	return e.extractCount(container, e.reg.Reactions)
}

func (e *Extractor) extractCommentsCount(container *goquery.Selection) string {
	return e.extractCount(container, e.reg.Comments)
}

// extractNumber returns the first digit run in text with separators
// stripped, or "0".
func extractNumber(text string) string {
	match := countPattern.FindString(text)
	if match == "" {
		return "0"
	}
	return strings.ReplaceAll(match, ",", "")
}
