package participant

import "context"

type Repository interface {
	List(ctx context.Context) ([]Participant, error)
	GetByID(ctx context.Context, id string) (Participant, bool, error)
	// Create fails with ErrDuplicateName when the name key is taken.
	Create(ctx context.Context, item Participant) error
	// Delete fails with ErrNotFound when no participant has id.
	Delete(ctx context.Context, id string) error
}
