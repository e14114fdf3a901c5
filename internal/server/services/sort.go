package services

import (
	"sort"
	"strings"

	"github.com/salaysay-tracker/backend/internal/server/models"
)

// SortField names a sortable listing column.
type SortField string

const (
	SortByName     SortField = "name"
	SortByDate     SortField = "date"
	SortByCategory SortField = "category"
	SortByStatus   SortField = "status"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSubmissions orders rows in place by the given field and direction.
// String fields compare case-insensitively, dates by instant. The sort is
// stable, so rows equal under the comparator keep their fetched order
// (newest first). Unknown fields fall back to date.
func SortSubmissions(rows []*models.Submission, field SortField, dir SortDirection) {
	less := lessFunc(field)
	sort.SliceStable(rows, func(i, j int) bool {
		if dir == SortDesc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func lessFunc(field SortField) func(a, b *models.Submission) bool {
	switch field {
	case SortByName:
		return func(a, b *models.Submission) bool {
			return strings.ToLower(a.FileName()) < strings.ToLower(b.FileName())
		}
	case SortByCategory:
		return func(a, b *models.Submission) bool {
			return strings.ToLower(a.ViolationType) < strings.ToLower(b.ViolationType)
		}
	case SortByStatus:
		return func(a, b *models.Submission) bool {
			return strings.ToLower(string(a.Status)) < strings.ToLower(string(b.Status))
		}
	default:
		return func(a, b *models.Submission) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
}
