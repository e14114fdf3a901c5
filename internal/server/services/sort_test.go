package services

import (
	"testing"
	"time"

	"github.com/salaysay-tracker/backend/internal/server/models"
)

func subsByName(names ...string) []*models.Submission {
	rows := make([]*models.Submission, len(names))
	for i, n := range names {
		rows[i] = &models.Submission{FilePath: n}
	}
	return rows
}

func names(rows []*models.Submission) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.FileName()
	}
	return out
}

func TestSortSubmissions_NameCaseInsensitive(t *testing.T) {
	rows := subsByName("b.pdf", "A.pdf", "c.pdf")

	SortSubmissions(rows, SortByName, SortAsc)
	got := names(rows)
	want := []string{"A.pdf", "b.pdf", "c.pdf"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("asc order = %v, want %v", got, want)
		}
	}

	SortSubmissions(rows, SortByName, SortDesc)
	got = names(rows)
	want = []string{"c.pdf", "b.pdf", "A.pdf"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("desc order = %v, want %v", got, want)
		}
	}
}

func TestSortSubmissions_Date(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []*models.Submission{
		{ID: "mid", CreatedAt: t0.Add(time.Hour)},
		{ID: "old", CreatedAt: t0},
		{ID: "new", CreatedAt: t0.Add(2 * time.Hour)},
	}

	SortSubmissions(rows, SortByDate, SortAsc)
	if rows[0].ID != "old" || rows[2].ID != "new" {
		t.Fatalf("asc by date wrong: %v %v %v", rows[0].ID, rows[1].ID, rows[2].ID)
	}

	SortSubmissions(rows, SortByDate, SortDesc)
	if rows[0].ID != "new" || rows[2].ID != "old" {
		t.Fatalf("desc by date wrong: %v %v %v", rows[0].ID, rows[1].ID, rows[2].ID)
	}
}

func TestSortSubmissions_CategoryAndStatus(t *testing.T) {
	rows := []*models.Submission{
		{ViolationType: "Other", Status: models.StatusRejected},
		{ViolationType: "attendance Issue", Status: models.StatusApproved},
		{ViolationType: "Behavioral Issue", Status: models.StatusPendingReview},
	}

	SortSubmissions(rows, SortByCategory, SortAsc)
	if rows[0].ViolationType != "attendance Issue" || rows[2].ViolationType != "Other" {
		t.Fatalf("category order wrong: %+v", names(rows))
	}

	SortSubmissions(rows, SortByStatus, SortAsc)
	if rows[0].Status != models.StatusApproved || rows[2].Status != models.StatusRejected {
		t.Fatalf("status order wrong")
	}
}

func TestSortSubmissions_StableOnEqualKeys(t *testing.T) {
	rows := []*models.Submission{
		{ID: "first", ViolationType: "Other"},
		{ID: "second", ViolationType: "Other"},
		{ID: "third", ViolationType: "Other"},
	}
	SortSubmissions(rows, SortByCategory, SortAsc)
	if rows[0].ID != "first" || rows[1].ID != "second" || rows[2].ID != "third" {
		t.Fatalf("equal keys should keep fetched order")
	}
}

func TestSortSubmissions_UnknownFieldFallsBackToDate(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []*models.Submission{
		{ID: "new", CreatedAt: t0.Add(time.Hour)},
		{ID: "old", CreatedAt: t0},
	}
	SortSubmissions(rows, SortField("bogus"), SortAsc)
	if rows[0].ID != "old" {
		t.Fatalf("fallback sort wrong")
	}
}
