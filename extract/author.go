package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tmcewan/feedexport/markdown"
	"github.com/tmcewan/feedexport/post"
	"github.com/tmcewan/feedexport/selectors"
)

// extractAuthor resolves the post author. Name and description go through
// the registry; the profile link is an independent attribute lookup whose
// text doubles as a name fallback. Returns nil only when no name can be
// determined by any path.
func (e *Extractor) extractAuthor(container *goquery.Selection) *post.AuthorInfo {
	var name, description, profileURL string

	if m := selectors.Try(container, e.reg.AuthorName); m != nil {
		name = strings.TrimSpace(m.Text())
		e.debugf("author name via selector: %s", name)
	}

	if m := selectors.Try(container, e.reg.AuthorDescription); m != nil {
		description = strings.TrimSpace(m.Text())
	}

	if link := container.Find(e.reg.AuthorProfileLink).First(); link.Length() > 0 {
		if href, ok := link.Attr("href"); ok {
			profileURL = markdown.AbsoluteURL(href, e.origin)
		}
		if name == "" {
			name = strings.TrimSpace(link.Text())
			e.debugf("author name via profile link fallback: %s", name)
		}
	}

	if name == "" {
		return nil
	}
	return &post.AuthorInfo{
		Name:        name,
		Description: description,
		ProfileURL:  profileURL,
	}
}
