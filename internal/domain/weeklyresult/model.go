package weeklyresult

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidWeek = errors.New("invalid week identity")
	ErrNotFound    = errors.New("weekly result not found")
)

type Semester string

const (
	SemesterH1 Semester = "H1"
	SemesterH2 Semester = "H2"
)

// ParseSemester accepts "H1"/"H2" in any case.
func ParseSemester(v string) (Semester, error) {
	switch Semester(strings.ToUpper(strings.TrimSpace(v))) {
	case SemesterH1:
		return SemesterH1, nil
	case SemesterH2:
		return SemesterH2, nil
	default:
		return "", fmt.Errorf("%w: semester must be %s or %s", ErrInvalidWeek, SemesterH1, SemesterH2)
	}
}

func (s Semester) order() int {
	if s == SemesterH2 {
		return 2
	}
	return 1
}

// Week identifies one contest week.
type Week struct {
	Year     int
	Semester Semester
	Number   int
}

func (w Week) Validate() error {
	if w.Year <= 0 {
		return fmt.Errorf("%w: year must be > 0", ErrInvalidWeek)
	}
	if _, err := ParseSemester(string(w.Semester)); err != nil {
		return err
	}
	if w.Number < 1 {
		return fmt.Errorf("%w: week number must be >= 1", ErrInvalidWeek)
	}
	return nil
}

// ID is the deterministic record identifier, e.g. "2025_H1_3".
func (w Week) ID() string {
	return fmt.Sprintf("%d_%s_%d", w.Year, w.Semester, w.Number)
}

func (w Week) String() string {
	return fmt.Sprintf("%d %s week %d", w.Year, w.Semester, w.Number)
}

// WinnerInfo is one podium slot of a weekly result.
type WinnerInfo struct {
	ParticipantID string
	Name          string
	Title         string
	Content       string
}

type Winners struct {
	First  WinnerInfo
	Second WinnerInfo
	Third  WinnerInfo
}

// Slots returns the podium in placement order.
func (w Winners) Slots() [3]WinnerInfo {
	return [3]WinnerInfo{w.First, w.Second, w.Third}
}

// WeeklyResult is the record written once per processed week.
type WeeklyResult struct {
	ID                 string
	Week               Week
	WeeklyParticipants []string
	Winners            Winners
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (r WeeklyResult) Clone() WeeklyResult {
	out := r
	out.WeeklyParticipants = append([]string{}, r.WeeklyParticipants...)
	return out
}

// SortNewestFirst orders results by year desc, week number desc, then H2 before H1.
func SortNewestFirst(items []WeeklyResult) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Week, items[j].Week
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Number != b.Number {
			return a.Number > b.Number
		}
		if a.Semester != b.Semester {
			return a.Semester.order() > b.Semester.order()
		}
		return items[i].ID < items[j].ID
	})
}

var placeholderTitles = []string{
	"Whispers of the Quill", "The Starlight Manuscript", "Chronicles of Ember",
	"A Bard's Last Rhyme", "The Sunken City's Secret", "Ode to a Forgotten Star",
	"Where the River Bends", "The Clockwork Nightingale", "Echoes in the Mist",
}

// PlaceholderTitle is the stable stand-in title for an untitled winning entry.
func PlaceholderTitle(weekNumber, rank int) string {
	seed := weekNumber*10 + rank
	n := len(placeholderTitles)
	return placeholderTitles[((seed%n)+n)%n]
}

// DisplayTitle returns the winner's title or the placeholder for its slot.
func DisplayTitle(week Week, rank int, info WinnerInfo) string {
	if title := strings.TrimSpace(info.Title); title != "" {
		return title
	}
	return PlaceholderTitle(week.Number, rank)
}
