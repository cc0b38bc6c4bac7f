package mongodb

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

// recordingWriter stands in for both collections of a week commit.
type recordingWriter struct {
	mu       sync.Mutex
	calls    []string
	bulkErr  error
	inFlight atomic.Int32
	overlap  atomic.Bool
	hold     time.Duration
}

func (w *recordingWriter) enter(call string) func() {
	if w.inFlight.Add(1) > 1 {
		w.overlap.Store(true)
	}
	w.mu.Lock()
	w.calls = append(w.calls, call)
	w.mu.Unlock()
	time.Sleep(w.hold)
	return func() { w.inFlight.Add(-1) }
}

func (w *recordingWriter) BulkWrite(_ context.Context, models []mongo.WriteModel, _ ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
	defer w.enter("participants")()
	if w.bulkErr != nil {
		return nil, w.bulkErr
	}
	return &mongo.BulkWriteResult{UpsertedCount: int64(len(models))}, nil
}

func (w *recordingWriter) ReplaceOne(_ context.Context, filter any, _ any, _ ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	defer w.enter("result:" + filter.(bson.M)["_id"].(string))()
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func (w *recordingWriter) recorded() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func serializedStore(w *recordingWriter) *Store {
	return &Store{participantWrites: w, resultWrites: w}
}

func weekFixture(number int) ([]participant.Participant, weeklyresult.WeeklyResult) {
	week := weeklyresult.Week{Year: 2025, Semester: weeklyresult.SemesterH1, Number: number}
	return []participant.Participant{{ID: "p-1", Name: "Alice", TotalPoints: 10}},
		weeklyresult.WeeklyResult{ID: week.ID(), Week: week}
}

func TestStore_CommitWeek_WritesParticipantsThenResult(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	participants, result := weekFixture(1)

	require.NoError(t, serializedStore(w).CommitWeek(t.Context(), participants, result))
	assert.Equal(t, []string{"participants", "result:2025_H1_1"}, w.recorded())
}

func TestStore_CommitWeek_ParticipantFailureSkipsResult(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{bulkErr: errors.New("write concern timeout")}
	participants, result := weekFixture(2)

	err := serializedStore(w).CommitWeek(t.Context(), participants, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert participants")
	assert.ErrorIs(t, err, w.bulkErr)
	assert.Equal(t, []string{"participants"}, w.recorded())
}

func TestStore_CommitWeek_SerializesWithoutTransactions(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{hold: 5 * time.Millisecond}
	store := serializedStore(w)

	var wg sync.WaitGroup
	for week := 1; week <= 4; week++ {
		wg.Add(1)
		go func(week int) {
			defer wg.Done()
			participants, result := weekFixture(week)
			assert.NoError(t, store.CommitWeek(context.Background(), participants, result))
		}(week)
	}
	wg.Wait()

	calls := w.recorded()
	require.Len(t, calls, 8)
	assert.False(t, w.overlap.Load())
	for i := 0; i < len(calls); i += 2 {
		assert.Equal(t, "participants", calls[i])
		assert.Contains(t, calls[i+1], "result:")
	}
}
