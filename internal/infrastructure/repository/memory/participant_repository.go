package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
)

type ParticipantRepository struct {
	store *Store
}

func (r *ParticipantRepository) List(_ context.Context) ([]participant.Participant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]participant.Participant, 0, len(r.store.orders))
	for _, id := range r.store.orders {
		out = append(out, r.store.participants[id].Clone())
	}

	return out, nil
}

func (r *ParticipantRepository) GetByID(_ context.Context, participantID string) (participant.Participant, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.participants[participantID]
	if !ok {
		return participant.Participant{}, false, nil
	}

	return p.Clone(), true, nil
}

func (r *ParticipantRepository) Create(_ context.Context, item participant.Participant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.participants[item.ID]; exists {
		return fmt.Errorf("%w: id=%s", participant.ErrDuplicateName, item.ID)
	}
	key := item.NameKey()
	for _, existing := range r.store.participants {
		if existing.NameKey() == key {
			return fmt.Errorf("%w: name=%s", participant.ErrDuplicateName, item.Name)
		}
	}

	r.store.participants[item.ID] = item.Clone()
	r.store.orders = append(r.store.orders, item.ID)
	return nil
}

func (r *ParticipantRepository) Delete(_ context.Context, participantID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.participants[participantID]; !exists {
		return fmt.Errorf("%w: id=%s", participant.ErrNotFound, participantID)
	}

	delete(r.store.participants, participantID)
	for i, id := range r.store.orders {
		if id == participantID {
			r.store.orders = append(r.store.orders[:i], r.store.orders[i+1:]...)
			break
		}
	}
	return nil
}
