package conflict

import (
	"testing"

	"github.com/WillCS/uqplanner/internal/timetable"
)

func TestAllowLectureOverlap(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"LEC1", "TUT1", true},
		{"TUT1", "Lecture", true},
		{"PRA1", "TUT1", false},
		{"", "", false},
		{"SEMINAR", "elective", true}, // "elective" contains "lec"
	}
	for _, tt := range tests {
		if got := AllowLectureOverlap(tt.a, tt.b); got != tt.want {
			t.Errorf("AllowLectureOverlap(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := AllowLectureOverlap(tt.b, tt.a); got != tt.want {
			t.Errorf("AllowLectureOverlap(%q, %q) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestChecker_Check(t *testing.T) {
	chosen := []Entry{
		{ListingName: "CSSE1001", ComponentName: "LEC1", Occurrence: occ(0, 9, 0, 11, 0)},
		{ListingName: "MATH1051", ComponentName: "TUT1", Occurrence: occ(1, 9, 0, 10, 0)},
	}

	tests := []struct {
		name      string
		allow     AllowFunc
		candidate Entry
		wantOther string
	}{
		{
			name:      "no overlap",
			candidate: Entry{ListingName: "INFS1200", ComponentName: "TUT1", Occurrence: occ(0, 11, 0, 12, 0)},
		},
		{
			name:      "overlap forbidden",
			candidate: Entry{ListingName: "INFS1200", ComponentName: "TUT1", Occurrence: occ(1, 9, 30, 10, 30)},
			wantOther: "MATH1051",
		},
		{
			name:      "lecture exception",
			allow:     AllowLectureOverlap,
			candidate: Entry{ListingName: "INFS1200", ComponentName: "PRA1", Occurrence: occ(0, 10, 0, 11, 0)},
		},
		{
			name:      "lecture exception does not cover tutorials",
			allow:     AllowLectureOverlap,
			candidate: Entry{ListingName: "INFS1200", ComponentName: "PRA1", Occurrence: occ(1, 9, 0, 10, 0)},
			wantOther: "MATH1051",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewChecker(tt.allow).Check(tt.candidate, chosen)
			if tt.wantOther == "" {
				if got != nil {
					t.Fatalf("expected no conflict, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a conflict")
			}
			if got.OtherListing != tt.wantOther {
				t.Errorf("expected conflict with %s, got %s", tt.wantOther, got.OtherListing)
			}
			if got.Reason == "" {
				t.Error("expected a reason")
			}
		})
	}
}

func TestFindClashes(t *testing.T) {
	sessions := []timetable.ScheduledOccurrence{
		{ListingName: "A", ComponentName: "LEC1", Occurrence: withWeeks(occ(0, 9, 0, 10, 0), "110")},
		{ListingName: "B", ComponentName: "TUT1", Occurrence: withWeeks(occ(0, 9, 30, 10, 30), "001")},
		{ListingName: "C", ComponentName: "PRA1", Occurrence: withWeeks(occ(0, 9, 45, 10, 15), "011")},
	}

	clashes, err := FindClashes(sessions)
	if err != nil {
		t.Fatalf("FindClashes failed: %v", err)
	}
	if len(clashes) != 2 {
		t.Fatalf("expected 2 clashes, got %d: %+v", len(clashes), clashes)
	}
	if clashes[0].A.ListingName != "A" || clashes[0].B.ListingName != "C" {
		t.Errorf("unexpected first clash %s/%s", clashes[0].A, clashes[0].B)
	}
	if clashes[1].A.ListingName != "B" || clashes[1].B.ListingName != "C" {
		t.Errorf("unexpected second clash %s/%s", clashes[1].A, clashes[1].B)
	}

	sessions[1].Occurrence.WeekPresence = timetable.WeekPresence{true}
	if _, err := FindClashes(sessions); err == nil {
		t.Error("expected week presence mismatch error")
	}
}
