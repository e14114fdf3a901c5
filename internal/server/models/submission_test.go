package models

import "testing"

func TestFileName_StripsTimestampPrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"1718000000000_report.pdf", "report.pdf"},
		{"uploads/1718000000000_report.pdf", "report.pdf"},
		{"report.pdf", "report.pdf"},
		{"my_report.pdf", "my_report.pdf"},
		{"_leading.pdf", "_leading.pdf"},
	}
	for _, tt := range tests {
		s := &Submission{FilePath: tt.path}
		if got := s.FileName(); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPendingReview, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Status("archived").Valid() {
		t.Errorf("unknown status should not be valid")
	}
}

func TestValidViolationType(t *testing.T) {
	if !ValidViolationType("Attendance Issue") {
		t.Errorf("known category rejected")
	}
	if ValidViolationType("Tardiness") {
		t.Errorf("unknown category accepted")
	}
}
