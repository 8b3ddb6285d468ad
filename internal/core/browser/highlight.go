package browser

import (
	"unicode"
	"unicode/utf8"
)

// Highlight splits text into spans, marking every case-insensitive
// occurrence of query. The query is matched literally. Matches do not
// overlap and are found left to right. An empty query yields the text as a
// single non-matching span.
func Highlight(text, query string) []Span {
	if query == "" {
		return []Span{{Text: text}}
	}
	q := []rune(query)
	var spans []Span
	start := 0 // start of the pending non-matching run
	for i := 0; i < len(text); {
		if end, ok := matchFoldAt(text, i, q); ok {
			if i > start {
				spans = append(spans, Span{Text: text[start:i]})
			}
			spans = append(spans, Span{Text: text[i:end], Match: true})
			i, start = end, end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	if start < len(text) || len(spans) == 0 {
		spans = append(spans, Span{Text: text[start:]})
	}
	return spans
}

// containsFold reports whether query occurs in text under the same case
// folding Highlight uses.
func containsFold(text, query string) bool {
	if query == "" {
		return true
	}
	q := []rune(query)
	for i := 0; i < len(text); {
		if _, ok := matchFoldAt(text, i, q); ok {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return false
}

// matchFoldAt reports whether q matches text at byte offset i under simple
// case folding, returning the byte offset just past the match.
func matchFoldAt(text string, i int, q []rune) (int, bool) {
	j := i
	for _, qr := range q {
		if j >= len(text) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(text[j:])
		if !equalFoldRune(r, qr) {
			return 0, false
		}
		j += size
	}
	return j, true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	// walk the fold orbit of a, e.g. k -> K -> U+212A
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
