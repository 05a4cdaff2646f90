package offender

import "context"

type noopTracker struct{}

// NewNoopTracker is used when offender tracking or redis is disabled.
func NewNoopTracker() Tracker {
	return noopTracker{}
}

func (noopTracker) Record(context.Context, string) (int64, error) { return 0, nil }

func (noopTracker) Get(context.Context, string) (*Offender, error) { return nil, ErrOffenderNotFound }

func (noopTracker) IsBanned(context.Context, string) bool { return false }

func (noopTracker) Reset(context.Context, string) error { return ErrOffenderNotFound }
