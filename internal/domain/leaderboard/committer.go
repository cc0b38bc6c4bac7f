package leaderboard

import (
	"context"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

// Committer persists one processed week. Implementations write every participant and
// the result together, or report an error and leave no partial state visible.
type Committer interface {
	CommitWeek(ctx context.Context, participants []participant.Participant, result weeklyresult.WeeklyResult) error
}
