package leaderboard

import (
	"strings"
	"time"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

// Entry is one podium selection as submitted by the admin.
type Entry struct {
	Name    string
	Title   string
	Content string
}

// Submission is one week's roster and podium.
type Submission struct {
	Week   weeklyresult.Week
	Roster []string
	First  Entry
	Second Entry
	Third  Entry
}

func (s Submission) entries() [3]Entry {
	return [3]Entry{s.First, s.Second, s.Third}
}

// Validate checks the week identity and the podium against the roster. It needs no
// stored state.
func (s Submission) Validate() error {
	if err := s.Week.Validate(); err != nil {
		return err
	}

	entries := s.entries()
	for _, entry := range entries {
		if strings.TrimSpace(entry.Name) == "" {
			return newError(ErrMissingWinner, "Please select 1st, 2nd, and 3rd place winners.")
		}
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		key := participant.NameKey(entry.Name)
		if _, dup := seen[key]; dup {
			return newError(ErrDuplicateWinner, "Each of the top 3 winners must be a unique participant.")
		}
		seen[key] = struct{}{}
	}

	roster := rosterKeys(s.Roster)
	for _, entry := range entries {
		if _, ok := roster[participant.NameKey(entry.Name)]; !ok {
			return newError(ErrWinnerNotInRoster, "Winner '%s' is not in the weekly participants list.", strings.TrimSpace(entry.Name))
		}
	}

	return nil
}

// Outcome is the fully computed state of one processed week, ready to commit.
type Outcome struct {
	Participants []participant.Participant
	Result       weeklyresult.WeeklyResult
}

// Plan validates sub, resolves the podium against participants and runs the update
// pass over every participant. Inputs are not mutated and nothing is written.
func Plan(sub Submission, participants []participant.Participant, points Points, now time.Time) (Outcome, error) {
	if err := sub.Validate(); err != nil {
		return Outcome{}, err
	}

	entries := sub.entries()
	placements := make(map[string]Placement, len(entries))
	var slots [3]weeklyresult.WinnerInfo
	for i, entry := range entries {
		winner, ok := participant.FindByName(participants, entry.Name)
		if !ok {
			return Outcome{}, newError(ErrUnknownWinner, "Winner '%s' was not found among registered participants.", strings.TrimSpace(entry.Name))
		}
		placements[winner.ID] = Placement(i + 1)
		slots[i] = weeklyresult.WinnerInfo{
			ParticipantID: winner.ID,
			Name:          winner.Name,
			Title:         strings.TrimSpace(entry.Title),
			Content:       strings.TrimSpace(entry.Content),
		}
	}

	roster := rosterKeys(sub.Roster)
	updated := make([]participant.Participant, 0, len(participants))
	for _, current := range participants {
		next := current.Clone()
		if _, took := roster[current.NameKey()]; took {
			placement, ok := placements[current.ID]
			if !ok {
				placement = Participated
			}
			next.CurrentStreak++
			next.ParticipationHistory = append(next.ParticipationHistory, sub.Week.Number)
			next.TotalPoints += points.For(placement)
			if next.BestRank == nil || int(placement) < *next.BestRank {
				rank := int(placement)
				next.BestRank = &rank
			}
		} else {
			next.CurrentStreak = 0
		}
		next.UpdatedAt = now
		updated = append(updated, next)
	}

	result := weeklyresult.WeeklyResult{
		ID:                 sub.Week.ID(),
		Week:               sub.Week,
		WeeklyParticipants: canonicalRoster(sub.Roster, participants),
		Winners: weeklyresult.Winners{
			First:  slots[0],
			Second: slots[1],
			Third:  slots[2],
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return Outcome{Participants: updated, Result: result}, nil
}

func rosterKeys(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := participant.NameKey(name)
		if key == "" {
			continue
		}
		out[key] = struct{}{}
	}
	return out
}

// canonicalRoster trims and dedupes names, using the stored spelling where one matches.
func canonicalRoster(names []string, participants []participant.Participant) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		key := participant.NameKey(name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if stored, ok := participant.FindByName(participants, name); ok {
			out = append(out, stored.Name)
			continue
		}
		out = append(out, strings.TrimSpace(name))
	}
	return out
}
