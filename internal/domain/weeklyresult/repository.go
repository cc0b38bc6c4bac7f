package weeklyresult

import "context"

// Repository reads weekly results. Writes go through the leaderboard commit port.
type Repository interface {
	List(ctx context.Context) ([]WeeklyResult, error)
	GetByID(ctx context.Context, id string) (WeeklyResult, bool, error)
}
