package services

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// Highlighter isolates every keyword occurrence in a document as its own
// styled span and appends the keyword's note after it.
//
// Matching runs over each paragraph's flattened text, so existing span
// boundaries never hide a keyword. The rewrite is uniform: every paragraph
// comes back as spans in the highlight font, matched or not.
type Highlighter struct {
	style domain.HighlightStyle
}

// NewHighlighter creates a highlighter with the given style.
func NewHighlighter(style domain.HighlightStyle) *Highlighter {
	return &Highlighter{style: style}
}

// Highlight returns a rewritten copy of doc. The input document is not
// modified, so a caller never observes a partially highlighted document.
func (h *Highlighter) Highlight(
	doc *domain.Document,
	table *domain.KeywordTable,
) (*domain.Document, domain.HighlightStats) {
	stats := domain.HighlightStats{PerKeyword: make(map[string]int)}
	out := &domain.Document{
		Title:      doc.Title,
		Paragraphs: make([]domain.Paragraph, len(doc.Paragraphs)),
	}

	for i := range doc.Paragraphs {
		text := doc.Paragraphs[i].Text()
		out.Paragraphs[i] = h.rewrite(text, FindMatches(text, table), table, &stats)
	}

	return out, stats
}

// FindMatches locates every occurrence of every keyword in text using
// literal, case-sensitive substring search. After a hit the scan resumes one
// character past the hit's start, so a keyword can match at overlapping
// offsets. The result is sorted by start, then end, then keyword.
func FindMatches(text string, table *domain.KeywordTable) []domain.Match {
	var matches []domain.Match

	for _, keyword := range table.Keywords() {
		for from := 0; from < len(text); {
			idx := strings.Index(text[from:], keyword)
			if idx < 0 {
				break
			}
			start := from + idx
			matches = append(matches, domain.Match{
				Start:   start,
				End:     start + len(keyword),
				Keyword: keyword,
			})
			_, size := utf8.DecodeRuneInString(text[start:])
			from = start + size
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Keyword < b.Keyword
	})

	return matches
}

// rewrite rebuilds one paragraph's spans from its text and sorted matches.
// A match starting before the cursor overlaps an already styled match and
// is skipped.
func (h *Highlighter) rewrite(
	text string,
	matches []domain.Match,
	table *domain.KeywordTable,
	stats *domain.HighlightStats,
) domain.Paragraph {
	if len(matches) == 0 {
		if text == "" {
			return domain.Paragraph{}
		}
		return domain.Paragraph{Spans: []domain.Span{h.plain(text)}}
	}

	spans := make([]domain.Span, 0, 3*len(matches)+1)
	cursor := 0
	for _, m := range matches {
		if m.Start < cursor {
			stats.SkippedOverlaps++
			continue
		}
		if m.Start > cursor {
			spans = append(spans, h.plain(text[cursor:m.Start]))
		}
		spans = append(spans, h.alert(text[m.Start:m.End]))
		if note, _ := table.Note(m.Keyword); note != "" {
			spans = append(spans, h.note(note))
		}
		stats.Matches++
		stats.PerKeyword[m.Keyword]++
		cursor = m.End
	}
	if cursor < len(text) {
		spans = append(spans, h.plain(text[cursor:]))
	}

	stats.Paragraphs++
	return domain.Paragraph{Spans: spans}
}

func (h *Highlighter) plain(text string) domain.Span {
	return domain.PlainSpan(text, h.style.FontName)
}

func (h *Highlighter) alert(text string) domain.Span {
	c := h.style.AlertColor
	return domain.Span{Text: text, FontName: h.style.FontName, Color: &c, Bold: true}
}

func (h *Highlighter) note(note string) domain.Span {
	c := h.style.AccentColor
	return domain.Span{Text: " " + note, FontName: h.style.FontName, Color: &c, Annotation: true}
}
