package board

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// SMF assigns message and topic ids monotonically. Rows below these
	// floors are board-rule threads and ancient topics that still appear
	// in the listing; they are never "new".
	minMsgID   = 20000000
	minTopicID = 5500000
)

var topicHrefRe = regexp.MustCompile(`topic=(\d+)\.`)

// ParseError indicates the listing page no longer matches the expected
// structure, usually an upstream markup change.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parsing board listing: " + e.Reason
}

// Parse extracts topic posts from the listing HTML, newest first.
//
// Each topic row carries a `span[id=msg_N]` wrapping the title link, the
// topic id in the link href, and the author as the row's profile link.
// Sticky topics are marked with a `stickyicon_N` element keyed by topic id
// and are dropped, as are rows below the id floors. Topic ids are assigned
// in creation order, so sorting by topic id descending yields newest-first.
func Parse(html string) ([]Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	sticky := make(map[int64]bool)
	doc.Find(`[id^="stickyicon_"]`).Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if topicID, err := strconv.ParseInt(strings.TrimPrefix(id, "stickyicon_"), 10, 64); err == nil {
			sticky[topicID] = true
		}
	})

	spans := doc.Find(`span[id^="msg_"]`)
	if spans.Length() == 0 {
		return nil, &ParseError{Reason: "no topic rows found, page format may have changed"}
	}

	var posts []Post
	spans.Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		msgID, err := strconv.ParseInt(strings.TrimPrefix(id, "msg_"), 10, 64)
		if err != nil {
			return
		}

		link := s.Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		m := topicHrefRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		topicID, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return
		}

		if sticky[topicID] || msgID < minMsgID || topicID < minTopicID {
			return
		}

		author := strings.TrimSpace(s.Closest("tr").Find(`a[href*="action=profile"]`).First().Text())

		posts = append(posts, Post{
			TopicID: topicID,
			MsgID:   msgID,
			Title:   strings.TrimSpace(link.Text()),
			URL:     href,
			Author:  author,
		})
	})

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].TopicID > posts[j].TopicID
	})

	return posts, nil
}

// Top returns the first n posts, or all of them when n exceeds the slice.
func Top(posts []Post, n int) []Post {
	if n > 0 && len(posts) > n {
		return posts[:n]
	}
	return posts
}
