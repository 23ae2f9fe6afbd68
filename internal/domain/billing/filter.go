package billing

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/enum"
)

// HistoryFilter narrows the history list. Zero values match everything.
type HistoryFilter struct {
	Search string
	Type   enum.BillingType
}

// Match reports whether a record passes the filter. Search is a
// case-insensitive substring of the student name.
func (f HistoryFilter) Match(record entity.TuitionRecord) bool {
	if f.Type != "" && record.Type != f.Type {
		return false
	}

	return strings.Contains(fold(record.StudentName), fold(f.Search))
}

// FilterHistory keeps the records matching f, preserving order.
func FilterHistory(records []entity.TuitionRecord, f HistoryFilter) []entity.TuitionRecord {
	out := make([]entity.TuitionRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
