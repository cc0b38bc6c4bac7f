package participant

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyName     = errors.New("participant name cannot be empty")
	ErrDuplicateName = errors.New("participant name already exists")
	ErrNotFound      = errors.New("participant not found")
)

// Participant is a registered contest entrant and their accumulated standing.
type Participant struct {
	ID                   string
	Name                 string
	TotalPoints          int
	CurrentStreak        int
	ParticipationHistory []int
	BestRank             *int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// New returns a participant with zeroed counters.
func New(id, name string, now time.Time) (Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Participant{}, ErrEmptyName
	}
	if strings.TrimSpace(id) == "" {
		return Participant{}, fmt.Errorf("participant id is required")
	}

	return Participant{
		ID:                   id,
		Name:                 name,
		ParticipationHistory: []int{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// NameKey is the case-insensitive identity of a participant name.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (p Participant) NameKey() string {
	return NameKey(p.Name)
}

// Clone returns a deep copy safe to mutate.
func (p Participant) Clone() Participant {
	out := p
	out.ParticipationHistory = append([]int{}, p.ParticipationHistory...)
	if p.BestRank != nil {
		rank := *p.BestRank
		out.BestRank = &rank
	}
	return out
}

func (p Participant) WeeksParticipated() int {
	return len(p.ParticipationHistory)
}

// FindByName returns the first participant whose name matches case-insensitively.
func FindByName(items []Participant, name string) (Participant, bool) {
	key := NameKey(name)
	if key == "" {
		return Participant{}, false
	}
	for _, item := range items {
		if item.NameKey() == key {
			return item, true
		}
	}
	return Participant{}, false
}
