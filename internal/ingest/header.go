package ingest

import "strings"

// diacritics folds the accented vowels found in the management system's
// Italian headers to plain ASCII.
var diacritics = strings.NewReplacer(
	"à", "a",
	"è", "e",
	"é", "e",
	"ì", "i",
	"ò", "o",
	"ù", "u",
)

// NormalizeHeader canonicalizes a header cell: trimmed, lower-cased,
// diacritics folded.
func NormalizeHeader(value string) string {
	return diacritics.Replace(strings.ToLower(strings.TrimSpace(value)))
}

// HeaderMap resolves logical fields to column indices from a workbook's
// header row. Lookups take a prioritized synonym list and fall back to a
// fixed positional index, which supports both headered, synonym-tolerant
// exports (price list) and headerless, position-defined ones (client import).
type HeaderMap struct {
	index map[string]int
}

// NewHeaderMap builds the mapping from the first row of a sheet. Empty
// header cells are ignored.
func NewHeaderMap(headerRow []string) *HeaderMap {
	index := make(map[string]int, len(headerRow))
	for i, cell := range headerRow {
		key := NormalizeHeader(cell)
		if key == "" {
			continue
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	return &HeaderMap{index: index}
}

// Column returns the index for the first matching synonym, or fallback when
// none matches. Pass fallback -1 for "no positional fallback".
func (h *HeaderMap) Column(fallback int, synonyms ...string) int {
	for _, s := range synonyms {
		if idx, ok := h.index[NormalizeHeader(s)]; ok {
			return idx
		}
	}
	return fallback
}

// Cell returns the row's value for the first matching synonym column, falling
// back to the positional index. Out-of-range or unresolved lookups yield "".
func (h *HeaderMap) Cell(row []string, fallback int, synonyms ...string) string {
	idx := h.Column(fallback, synonyms...)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// IsEmptyRow reports whether every cell of the row is blank. Fully-empty rows
// are skipped (and counted) by the pipelines, never failed.
func IsEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
