package usecase

// Recorder receives domain counters. observability.Metrics implements it.
type Recorder interface {
	SubmissionProcessed(outcome string)
	ParticipantsTotal(n int)
}

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type nopRecorder struct{}

func (nopRecorder) SubmissionProcessed(string) {}
func (nopRecorder) ParticipantsTotal(int)      {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
