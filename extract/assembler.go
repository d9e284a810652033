package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tmcewan/feedexport/markdown"
	"github.com/tmcewan/feedexport/post"
)

// ExtractAll scans every post container in document order and assembles a
// record per extractable post. Containers without the mandatory content
// region are skipped silently; a panic while processing one post is
// recovered and logged, and scanning continues. Sequence ids are 1-based in
// emission order.
func (e *Extractor) ExtractAll(doc *goquery.Document) []post.Record {
	containers := doc.Find(e.reg.PostContainers)
	e.debugf("found %d post containers", containers.Length())

	records := make([]post.Record, 0, containers.Length())

	containers.Each(func(i int, container *goquery.Selection) {
		rec, ok := e.extractPost(container)
		if !ok {
			e.debugf("post %d: no content extracted", i+1)
			return
		}
		rec.SequenceID = len(records) + 1
		records = append(records, rec)
	})

	e.debugf("extracted %d posts", len(records))
	return records
}

// extractPost assembles one record. The commentary region and its
// directional content span are mandatory; their absence is a normal skip,
// not an error. Extractor panics are contained here so one broken post
// never aborts the run.
func (e *Extractor) extractPost(container *goquery.Selection) (rec post.Record, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.debugf("post extraction panicked: %v", r)
			ok = false
		}
	}()

	commentary := container.Find(e.reg.CommentaryDiv).First()
	if commentary.Length() == 0 {
		return post.Record{}, false
	}

	contentSpan := commentary.Find(e.reg.ContentSpan).First()
	if contentSpan.Length() == 0 {
		return post.Record{}, false
	}

	content := markdown.Normalize(contentSpan, e.origin)
	if strings.TrimSpace(content) == "" {
		return post.Record{}, false
	}

	return post.Record{
		Author:         e.extractAuthor(container),
		Timestamp:      e.extractTimestamp(container),
		TimeAgo:        e.extractTimeAgo(container),
		Content:        content,
		ReactionsCount: e.extractReactionsCount(container),
		CommentsCount:  e.extractCommentsCount(container),
		IsRepost:       e.extractRepostFlag(container),
		MediaType:      e.extractMediaType(container),
	}, true
}

// PostCount returns the number of post containers currently present in the
// document, extractable or not.
func (e *Extractor) PostCount(doc *goquery.Document) int {
	return doc.Find(e.reg.PostContainers).Length()
}
