package usecase

import (
	"context"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
)

type LeaderboardService struct {
	participants participant.Repository
}

func NewLeaderboardService(participants participant.Repository) *LeaderboardService {
	return &LeaderboardService{participants: participants}
}

// List returns the ranked leaderboard, optionally narrowed by a name query. Positions
// always refer to the unfiltered ranking.
func (s *LeaderboardService) List(ctx context.Context, query string) ([]leaderboard.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.List")
	defer span.End()

	rows, err := s.ranked(ctx)
	if err != nil {
		return nil, err
	}
	return leaderboard.Filter(rows, query), nil
}

func (s *LeaderboardService) Highlights(ctx context.Context) (leaderboard.Highlights, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Highlights")
	defer span.End()

	rows, err := s.ranked(ctx)
	if err != nil {
		return leaderboard.Highlights{}, err
	}
	return leaderboard.ComputeHighlights(rows), nil
}

func (s *LeaderboardService) ranked(ctx context.Context) ([]leaderboard.Standing, error) {
	items, err := s.participants.List(ctx)
	if err != nil {
		return nil, storeFailure("Failed to load leaderboard.", err)
	}
	return leaderboard.Rank(items), nil
}
