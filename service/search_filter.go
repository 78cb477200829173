package service

import (
	"fmt"
	"strings"
	"unicode"

	"bigwallet-api/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchFilter narrows a feed to the records whose sender or receiver name
// contains a query, comparing with the casing rules of a language.
// It holds only configuration, so one value can serve every caller.
type SearchFilter struct {
	tag              language.Tag
	ignoreDiacritics bool
}

// NewSearchFilter parses locale as a BCP 47 tag ("en", "tr", "de-CH").
func NewSearchFilter(locale string, ignoreDiacritics bool) (*SearchFilter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid search locale %q: %w", locale, err)
	}
	return &SearchFilter{tag: tag, ignoreDiacritics: ignoreDiacritics}, nil
}

// Locale returns the language the filter folds case with.
func (f *SearchFilter) Locale() language.Tag {
	return f.tag
}

// Apply returns the records of feed matching q, in feed order.
// An empty q returns feed itself. The query is not trimmed.
// Only SenderName and ReceiverName are inspected; feed is never modified.
func (f *SearchFilter) Apply(feed []model.TransactionRecord, q string) []model.TransactionRecord {
	if q == "" {
		return feed
	}

	fold := f.newFolder()
	needle := fold(q)

	matches := make([]model.TransactionRecord, 0)
	for _, record := range feed {
		if strings.Contains(fold(record.SenderName), needle) ||
			strings.Contains(fold(record.ReceiverName), needle) {
			matches = append(matches, record)
		}
	}
	return matches
}

// newFolder builds a fresh folding function. Casers and transformers keep
// internal state and must not be shared across goroutines.
// Text is lowercased with the filter's language first, so Turkish İ and I
// land on i and ı, then case-folded so that ß matches SS and a final ς
// matches σ.
func (f *SearchFilter) newFolder() func(string) string {
	lower := cases.Lower(f.tag)
	folder := cases.Fold()

	var normalizer transform.Transformer = norm.NFC
	if f.ignoreDiacritics {
		normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}

	return func(s string) string {
		folded := folder.String(lower.String(s))
		normalized, _, err := transform.String(normalizer, folded)
		if err != nil {
			return folded
		}
		return normalized
	}
}
