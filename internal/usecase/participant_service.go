package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/id"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/logging"
)

type AddParticipantInput struct {
	Name string
}

// ParticipantOutput is the result of an admin participant mutation.
type ParticipantOutput struct {
	Message     string
	Participant participant.Participant
}

type ParticipantService struct {
	repo     participant.Repository
	ids      id.Generator
	logger   *logging.Logger
	recorder Recorder
	now      func() time.Time
}

func NewParticipantService(repo participant.Repository, ids id.Generator, logger *logging.Logger, recorder Recorder) *ParticipantService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ParticipantService{
		repo:     repo,
		ids:      ids,
		logger:   logger,
		recorder: recorderOrNop(recorder),
		now:      time.Now,
	}
}

func (s *ParticipantService) List(ctx context.Context) ([]participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipantService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure("Failed to load participants.", err)
	}
	s.recorder.ParticipantsTotal(len(items))

	return items, nil
}

func (s *ParticipantService) Add(ctx context.Context, input AddParticipantInput) (ParticipantOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipantService.Add")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ParticipantOutput{}, failure(ErrInvalidInput, "Participant name cannot be empty.", nil)
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return ParticipantOutput{}, storeFailure("Failed to save new participant.", err)
	}
	if _, taken := participant.FindByName(existing, name); taken {
		return ParticipantOutput{}, failure(ErrConflict, fmt.Sprintf("Participant '%s' already exists.", name), nil)
	}

	participantID, err := s.ids.NewID()
	if err != nil {
		return ParticipantOutput{}, fmt.Errorf("generate participant id: %w", err)
	}
	item, err := participant.New(participantID, name, s.now().UTC())
	if err != nil {
		return ParticipantOutput{}, failure(ErrInvalidInput, "Participant name cannot be empty.", err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, participant.ErrDuplicateName) {
			return ParticipantOutput{}, failure(ErrConflict, fmt.Sprintf("Participant '%s' already exists.", name), err)
		}
		return ParticipantOutput{}, storeFailure("Failed to save new participant.", err)
	}

	s.recorder.ParticipantsTotal(len(existing) + 1)
	s.logger.InfoContext(ctx, "participant added",
		"participant_id", item.ID,
		"name", item.Name,
	)

	return ParticipantOutput{
		Message:     fmt.Sprintf("Participant '%s' added successfully.", item.Name),
		Participant: item,
	}, nil
}

func (s *ParticipantService) Delete(ctx context.Context, participantID string) (ParticipantOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipantService.Delete")
	defer span.End()

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return ParticipantOutput{}, failure(ErrInvalidInput, "Participant id is required.", nil)
	}

	item, exists, err := s.repo.GetByID(ctx, participantID)
	if err != nil {
		return ParticipantOutput{}, storeFailure("Failed to delete participant.", err)
	}
	if !exists {
		return ParticipantOutput{}, failure(ErrNotFound, "Participant not found.", nil)
	}

	if err := s.repo.Delete(ctx, participantID); err != nil {
		if errors.Is(err, participant.ErrNotFound) {
			return ParticipantOutput{}, failure(ErrNotFound, "Participant not found.", err)
		}
		return ParticipantOutput{}, storeFailure("Failed to delete participant.", err)
	}

	s.logger.InfoContext(ctx, "participant deleted",
		"participant_id", item.ID,
		"name", item.Name,
	)

	return ParticipantOutput{
		Message:     fmt.Sprintf("Participant '%s' deleted.", item.Name),
		Participant: item,
	}, nil
}
