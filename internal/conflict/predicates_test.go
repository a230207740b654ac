package conflict

import (
	"errors"
	"testing"

	"github.com/WillCS/uqplanner/internal/timetable"
)

func occ(day timetable.Weekday, startH, startM, endH, endM int) timetable.Occurrence {
	return timetable.Occurrence{
		Weekday: day,
		Start:   timetable.TimeOfDay{Hours: startH, Minutes: startM},
		End:     timetable.TimeOfDay{Hours: endH, Minutes: endM},
	}
}

func withWeeks(o timetable.Occurrence, pattern string) timetable.Occurrence {
	wp, err := timetable.ParseWeekPresence(pattern)
	if err != nil {
		panic(err)
	}
	o.WeekPresence = wp
	return o
}

// halfOpen is the reference formulation used to cross-check the predicate.
func halfOpen(a, b timetable.Occurrence) bool {
	if a.Weekday != b.Weekday {
		return false
	}
	start := max(timetable.ToMinutes(a.Start), timetable.ToMinutes(b.Start))
	end := min(timetable.ToMinutes(a.End), timetable.ToMinutes(b.End))
	return start < end
}

func TestOverlapsInTime(t *testing.T) {
	tests := []struct {
		name string
		a, b timetable.Occurrence
		want bool
	}{
		{"disjoint", occ(0, 9, 0, 10, 0), occ(0, 11, 0, 12, 0), false},
		{"end touches start", occ(0, 9, 0, 10, 0), occ(0, 10, 0, 11, 0), false},
		{"partial overlap", occ(0, 9, 0, 10, 0), occ(0, 9, 30, 10, 30), true},
		{"contained", occ(0, 9, 0, 12, 0), occ(0, 10, 0, 11, 0), true},
		{"same start", occ(0, 9, 0, 10, 0), occ(0, 9, 0, 11, 0), true},
		{"same end", occ(0, 9, 0, 11, 0), occ(0, 10, 0, 11, 0), true},
		{"identical", occ(2, 14, 0, 16, 0), occ(2, 14, 0, 16, 0), true},
		{"different day", occ(0, 9, 0, 10, 0), occ(1, 9, 0, 10, 0), false},
		{"unnormalized end", occ(0, 9, 0, 9, 90), occ(0, 10, 15, 11, 0), true},
		{"unnormalized end touching", occ(0, 9, 0, 9, 75), occ(0, 10, 15, 11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapsInTime(tt.a, tt.b); got != tt.want {
				t.Errorf("OverlapsInTime(a, b) = %v, want %v", got, tt.want)
			}
			if got := OverlapsInTime(tt.b, tt.a); got != tt.want {
				t.Errorf("OverlapsInTime(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapsInTime_MatchesHalfOpenForPositiveLengths(t *testing.T) {
	// Every pair of slots on a half-hour grid between 8:00 and 12:00.
	var slots []timetable.Occurrence
	for start := 8 * 60; start < 12*60; start += 30 {
		for end := start + 30; end <= 12*60; end += 30 {
			slots = append(slots, occ(0, 0, start, 0, end))
		}
	}

	for _, a := range slots {
		for _, b := range slots {
			got := OverlapsInTime(a, b)
			if got != halfOpen(a, b) {
				t.Errorf("mismatch for %+v vs %+v: predicate %v, half-open %v", a, b, got, halfOpen(a, b))
			}
			if got != OverlapsInTime(b, a) {
				t.Errorf("asymmetric for %+v vs %+v", a, b)
			}
		}
	}
}

func TestOverlapsInTime_SelfOverlap(t *testing.T) {
	cases := []timetable.Occurrence{
		occ(0, 9, 0, 10, 0),
		occ(4, 17, 30, 17, 90),
		occ(1, 12, 0, 12, 0), // zero length
		occ(3, 12, 0, 11, 0), // inverted
	}
	for _, o := range cases {
		if !OverlapsInTime(o, o) {
			t.Errorf("expected %+v to overlap itself", o)
		}
	}
}

func TestClashes(t *testing.T) {
	tests := []struct {
		name    string
		a, b    timetable.Occurrence
		want    bool
		wantErr error
	}{
		{
			name: "overlap in shared week",
			a:    withWeeks(occ(0, 9, 0, 10, 0), "110"),
			b:    withWeeks(occ(0, 9, 30, 10, 30), "011"),
			want: true,
		},
		{
			name: "overlap but disjoint weeks",
			a:    withWeeks(occ(0, 9, 0, 10, 0), "10"),
			b:    withWeeks(occ(0, 9, 0, 10, 0), "01"),
			want: false,
		},
		{
			name: "shared week but no time overlap",
			a:    withWeeks(occ(0, 9, 0, 10, 0), "11"),
			b:    withWeeks(occ(0, 10, 0, 11, 0), "11"),
			want: false,
		},
		{
			name: "missing week presence",
			a:    occ(0, 9, 0, 10, 0),
			b:    withWeeks(occ(0, 9, 0, 10, 0), "11"),
			want: false,
		},
		{
			name:    "mismatched lengths",
			a:       withWeeks(occ(0, 9, 0, 10, 0), "11"),
			b:       withWeeks(occ(0, 9, 0, 10, 0), "111"),
			wantErr: timetable.ErrWeekPresenceMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, pair := range [][2]timetable.Occurrence{{tt.a, tt.b}, {tt.b, tt.a}} {
				got, err := Clashes(pair[0], pair[1])
				if tt.wantErr != nil {
					if !errors.Is(err, tt.wantErr) {
						t.Fatalf("expected %v, got %v", tt.wantErr, err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("Clashes failed: %v", err)
				}
				if got != tt.want {
					t.Errorf("Clashes = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
