package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/logging"
)

type WinnerInput struct {
	Name    string
	Title   string
	Content string
}

type SubmitWeeklyResultInput struct {
	Year               int
	Semester           string
	WeekNumber         int
	WeeklyParticipants []string
	First              WinnerInput
	Second             WinnerInput
	Third              WinnerInput
}

type SubmitWeeklyResultOutput struct {
	Message string
	Result  weeklyresult.WeeklyResult
}

type WeeklyResultService struct {
	participants participant.Repository
	results      weeklyresult.Repository
	committer    leaderboard.Committer
	points       leaderboard.Points
	logger       *logging.Logger
	recorder     Recorder
	now          func() time.Time
}

func NewWeeklyResultService(
	participants participant.Repository,
	results weeklyresult.Repository,
	committer leaderboard.Committer,
	points leaderboard.Points,
	logger *logging.Logger,
	recorder Recorder,
) *WeeklyResultService {
	if logger == nil {
		logger = logging.Default()
	}

	return &WeeklyResultService{
		participants: participants,
		results:      results,
		committer:    committer,
		points:       points,
		logger:       logger,
		recorder:     recorderOrNop(recorder),
		now:          time.Now,
	}
}

// Submit validates a week, recomputes every participant and commits the participants
// together with the week's result. Nothing is written when any check fails.
func (s *WeeklyResultService) Submit(ctx context.Context, input SubmitWeeklyResultInput) (SubmitWeeklyResultOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyResultService.Submit")
	defer span.End()

	semester, err := weeklyresult.ParseSemester(input.Semester)
	if err != nil {
		s.recorder.SubmissionProcessed(OutcomeRejected)
		return SubmitWeeklyResultOutput{}, failure(ErrInvalidInput, "Semester must be H1 or H2.", err)
	}
	week := weeklyresult.Week{Year: input.Year, Semester: semester, Number: input.WeekNumber}
	if err := week.Validate(); err != nil {
		s.recorder.SubmissionProcessed(OutcomeRejected)
		return SubmitWeeklyResultOutput{}, failure(ErrInvalidInput, "Year must be positive and week number at least 1.", err)
	}

	sub := leaderboard.Submission{
		Week:   week,
		Roster: input.WeeklyParticipants,
		First:  leaderboard.Entry(input.First),
		Second: leaderboard.Entry(input.Second),
		Third:  leaderboard.Entry(input.Third),
	}
	if err := sub.Validate(); err != nil {
		s.recorder.SubmissionProcessed(OutcomeRejected)
		return SubmitWeeklyResultOutput{}, err
	}

	participants, err := s.participants.List(ctx)
	if err != nil {
		s.recorder.SubmissionProcessed(OutcomeFailed)
		return SubmitWeeklyResultOutput{}, storeFailure("Failed to update leaderboard.", err)
	}

	outcome, err := leaderboard.Plan(sub, participants, s.points, s.now().UTC())
	if err != nil {
		s.recorder.SubmissionProcessed(OutcomeRejected)
		return SubmitWeeklyResultOutput{}, err
	}

	previous, exists, err := s.results.GetByID(ctx, outcome.Result.ID)
	if err != nil {
		s.recorder.SubmissionProcessed(OutcomeFailed)
		return SubmitWeeklyResultOutput{}, storeFailure("Failed to update leaderboard.", err)
	}
	if exists {
		outcome.Result.CreatedAt = previous.CreatedAt
	}

	if err := s.committer.CommitWeek(ctx, outcome.Participants, outcome.Result); err != nil {
		s.recorder.SubmissionProcessed(OutcomeFailed)
		s.logger.ErrorContext(ctx, "weekly result commit failed",
			"week_id", outcome.Result.ID,
			"participants", len(outcome.Participants),
			"error", err,
		)
		return SubmitWeeklyResultOutput{}, storeFailure("Failed to update leaderboard.", err)
	}

	s.recorder.SubmissionProcessed(OutcomeSuccess)
	s.recorder.ParticipantsTotal(len(outcome.Participants))
	s.logger.InfoContext(ctx, "weekly result committed",
		"week_id", outcome.Result.ID,
		"roster_size", len(outcome.Result.WeeklyParticipants),
		"participants", len(outcome.Participants),
		"overwrote", exists,
	)

	return SubmitWeeklyResultOutput{
		Message: fmt.Sprintf("Leaderboard updated successfully for %d %s week %d.", week.Year, week.Semester, week.Number),
		Result:  outcome.Result,
	}, nil
}

// List returns every weekly result, newest week first.
func (s *WeeklyResultService) List(ctx context.Context) ([]weeklyresult.WeeklyResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyResultService.List")
	defer span.End()

	items, err := s.results.List(ctx)
	if err != nil {
		return nil, storeFailure("Failed to load weekly results.", err)
	}
	weeklyresult.SortNewestFirst(items)

	return items, nil
}

func (s *WeeklyResultService) Get(ctx context.Context, resultID string) (weeklyresult.WeeklyResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyResultService.Get")
	defer span.End()

	resultID = strings.TrimSpace(resultID)
	if resultID == "" {
		return weeklyresult.WeeklyResult{}, failure(ErrInvalidInput, "Weekly result id is required.", nil)
	}

	item, exists, err := s.results.GetByID(ctx, resultID)
	if err != nil {
		return weeklyresult.WeeklyResult{}, storeFailure("Failed to load weekly result.", err)
	}
	if !exists {
		return weeklyresult.WeeklyResult{}, failure(ErrNotFound, fmt.Sprintf("Weekly result '%s' not found.", resultID), nil)
	}

	return item, nil
}
