package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

// Store keeps participants and weekly results in process memory. All repositories
// handed out by one Store share its lock, so CommitWeek is atomic to readers.
type Store struct {
	mu           sync.RWMutex
	participants map[string]participant.Participant
	orders       []string
	results      map[string]weeklyresult.WeeklyResult
	revoked      map[string]time.Time
}

func NewStore(seed ...participant.Participant) *Store {
	s := &Store{
		participants: make(map[string]participant.Participant, len(seed)),
		orders:       make([]string, 0, len(seed)),
		results:      make(map[string]weeklyresult.WeeklyResult),
		revoked:      make(map[string]time.Time),
	}
	for _, p := range seed {
		if _, exists := s.participants[p.ID]; !exists {
			s.orders = append(s.orders, p.ID)
		}
		s.participants[p.ID] = p.Clone()
	}
	return s
}

func (s *Store) Participants() *ParticipantRepository {
	return &ParticipantRepository{store: s}
}

func (s *Store) WeeklyResults() *WeeklyResultRepository {
	return &WeeklyResultRepository{store: s}
}

func (s *Store) RevokedTokens() *RevocationRepository {
	return &RevocationRepository{store: s}
}

// CommitWeek swaps in every participant and the result under one write lock.
func (s *Store) CommitWeek(ctx context.Context, participants []participant.Participant, result weeklyresult.WeeklyResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	staged := make([]participant.Participant, 0, len(participants))
	for _, p := range participants {
		staged = append(staged, p.Clone())
	}
	stagedResult := result.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range staged {
		if _, exists := s.participants[p.ID]; !exists {
			s.orders = append(s.orders, p.ID)
		}
		s.participants[p.ID] = p
	}
	s.results[stagedResult.ID] = stagedResult

	return nil
}
