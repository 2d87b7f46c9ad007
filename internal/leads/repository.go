package leads

import (
	"context"
	"sync"
	"time"
)

// Store defines the interface for accepted-lead storage
type Store interface {
	Append(ctx context.Context, sub *Submission) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	GetByID(ctx context.Context, id string) (*Record, error)
}

// MemoryStore keeps accepted leads for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
	now     func() time.Time
	newID   func(time.Time) string
}

// NewMemoryStore creates an empty append-only store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:   time.Now,
		newID: NewLeadID,
	}
}

// WithClock overrides the time source, for tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	if now != nil {
		s.now = now
	}
	return s
}

// Append assigns a lead id and receive time and records the submission.
func (s *MemoryStore) Append(ctx context.Context, sub *Submission) (*Record, error) {
	if sub == nil {
		return nil, ErrNilSubmission
	}
	receivedAt := s.now().UTC()
	rec := &Record{
		Submission: cloneSubmission(sub),
		LeadID:     s.newID(receivedAt),
		ReceivedAt: receivedAt,
	}

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	return rec, nil
}

// List returns records in insertion order. The slice is a copy; records are shared and immutable.
func (s *MemoryStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// GetByID retrieves a lead by ID
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.LeadID == id {
			return rec, nil
		}
	}
	return nil, ErrLeadNotFound
}

func cloneSubmission(sub *Submission) Submission {
	out := *sub
	out.PrimaryUserActions = append([]string(nil), sub.PrimaryUserActions...)
	return out
}
