package feed

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"iter"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/rsscollect/pkg/domain"
)

// Diagnostic describes a recoverable problem found while parsing a feed document
type Diagnostic struct {
	Index   int // position of the node in the document
	Title   string
	Link    string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("item #%d (title: %q, link: %q): %s", d.Index, d.Title, d.Link, d.Message)
}

// ParseResult holds candidates extracted from a feed document along with parse diagnostics
type ParseResult struct {
	Title       string
	Diagnostics []Diagnostic
	candidates  []domain.Candidate
}

// NewParseResult makes a result from already parsed candidates
func NewParseResult(title string, candidates []domain.Candidate, diags []Diagnostic) *ParseResult {
	return &ParseResult{Title: title, candidates: candidates, Diagnostics: diags}
}

// All returns the sequence of parsed candidates. It can be iterated any number of times.
func (r *ParseResult) All() iter.Seq[domain.Candidate] {
	return func(yield func(domain.Candidate) bool) {
		for _, c := range r.candidates {
			if !yield(c) {
				return
			}
		}
	}
}

// Len returns number of parsed candidates
func (r *ParseResult) Len() int {
	return len(r.candidates)
}

// Parser converts RSS/Atom documents to item candidates. It's safe for concurrent use.
type Parser struct {
	titlePolicy *bluemonday.Policy
}

// NewParser makes a new feed parser
func NewParser() *Parser {
	return &Parser{titlePolicy: bluemonday.StrictPolicy()}
}

// Parse extracts candidates bound to feedID from raw feed data. Items without title or link are skipped
// and reported as diagnostics, the same for unparseable dates. Only a broken document is an error,
// returned as *MalformedXMLError.
func (p *Parser) Parse(data []byte, feedID int64) (*ParseResult, error) {
	parsed, err := p.parseDocument(data)
	if err != nil {
		return nil, &MalformedXMLError{Err: err}
	}

	candidates := make([]domain.Candidate, 0, len(parsed.Items))
	var diagnostics []Diagnostic
	for i, item := range parsed.Items {
		if item == nil {
			continue
		}
		c, diags, ok := p.candidate(i, item, feedID)
		diagnostics = append(diagnostics, diags...)
		if ok {
			candidates = append(candidates, c)
		}
	}
	return NewParseResult(strings.TrimSpace(parsed.Title), candidates, diagnostics), nil
}

// parseDocument runs gofeed on the data, panics inside the third-party parser are reported as errors
func (p *Parser) parseDocument(data []byte) (parsed *gofeed.Feed, err error) {
	defer func() {
		if r := recover(); r != nil {
			parsed, err = nil, fmt.Errorf("parser panic: %v", r)
		}
	}()

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}

	// gofeed parser keeps state between calls, so a new one is made per document
	parsed, err = gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

// candidate converts a single gofeed item, returns false if the item has to be skipped
func (p *Parser) candidate(idx int, item *gofeed.Item, feedID int64) (domain.Candidate, []Diagnostic, bool) {
	var diags []Diagnostic
	title := p.cleanTitle(item.Title)
	link := strings.TrimSpace(item.Link)
	if link == "" && len(item.Links) > 0 {
		link = strings.TrimSpace(item.Links[0])
	}

	if title == "" || link == "" {
		diags = append(diags, Diagnostic{Index: idx, Title: title, Link: link, Message: "missing title or link, skipped"})
		return domain.Candidate{}, diags, false
	}
	if len(link) > domain.MaxItemLinkLen {
		diags = append(diags, Diagnostic{Index: idx, Title: title, Link: truncate(link, 64),
			Message: fmt.Sprintf("link longer than %d characters, skipped", domain.MaxItemLinkLen)})
		return domain.Candidate{}, diags, false
	}
	if _, err := url.Parse(link); err != nil {
		diags = append(diags, Diagnostic{Index: idx, Title: title, Link: link, Message: fmt.Sprintf("invalid link, skipped: %v", err)})
		return domain.Candidate{}, diags, false
	}

	guid := strings.TrimSpace(item.GUID)
	if guid == "" {
		guid = link
	}

	c := domain.Candidate{
		FeedID:      feedID,
		Title:       truncate(title, domain.MaxItemTitleLen),
		Link:        link,
		GUID:        truncate(guid, domain.MaxItemGUIDLen),
		Description: truncate(strings.TrimSpace(item.Description), domain.MaxItemDescriptionLen),
		Content:     truncate(strings.TrimSpace(itemContent(item)), domain.MaxItemContentLen),
	}

	published, raw := publishTime(item)
	switch {
	case published != nil:
		c.PublishTime = published
	case raw != "":
		diags = append(diags, Diagnostic{Index: idx, Title: title, Link: link, Message: fmt.Sprintf("invalid publish date %q", raw)})
	}

	return c, diags, true
}

// cleanTitle strips markup from the title and collapses whitespace
func (p *Parser) cleanTitle(title string) string {
	title = html.UnescapeString(p.titlePolicy.Sanitize(title))
	return strings.Join(strings.Fields(title), " ")
}

// itemContent prefers encoded content and falls back to a plain content element
func itemContent(item *gofeed.Item) string {
	if item.Content != "" {
		return item.Content
	}
	if c, ok := item.Custom["content"]; ok {
		return c
	}
	return ""
}

// publishTime returns parsed publication time of the item and the raw date string.
// Published date is preferred, updated date used as a fallback.
func publishTime(item *gofeed.Item) (*time.Time, string) {
	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		return &t, item.Published
	}
	if raw := strings.TrimSpace(item.Published); raw != "" {
		if t, ok := parseDate(raw); ok {
			return &t, raw
		}
		return nil, raw
	}
	if item.UpdatedParsed != nil {
		t := item.UpdatedParsed.UTC()
		return &t, item.Updated
	}
	if raw := strings.TrimSpace(item.Updated); raw != "" {
		if t, ok := parseDate(raw); ok {
			return &t, raw
		}
		return nil, raw
	}
	return nil, ""
}

// parseDate handles free-form dates gofeed wasn't able to parse, zone-less dates are taken as UTC
func parseDate(raw string) (time.Time, bool) {
	t, err := dateparse.ParseIn(strings.Join(strings.Fields(raw), " "), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
