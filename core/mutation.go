package core

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrCancelled means the user declined the confirmation prompt.
	ErrCancelled = errors.New("cancelled")
	// ErrInFlight means a mutation for the same key is already running; the
	// duplicate attempt is a no-op.
	ErrInFlight = errors.New("mutation already in flight")
)

type (
	// Confirmer gates destructive or state-changing actions behind an
	// explicit user confirmation.
	Confirmer interface {
		Confirm(prompt string) bool
	}

	// Notifier shows the outcome of a workflow to the user.
	Notifier interface {
		Success(msg string)
		Failure(msg string)
	}

	// Refresher is the panel side of the workflow: after any successful
	// mutation the collection is refetched, never patched locally.
	Refresher interface {
		Refresh(ctx context.Context) error
	}
)

// Mutator runs the confirm -> mutate -> refetch sequence shared by every
// delete/approve/reject/update action. One Mutator serves one panel.
type Mutator struct {
	confirm Confirmer
	notify  Notifier
	panel   Refresher
	log     Logger

	mutex    sync.Mutex
	inflight map[string]bool
}

func NewMutator(panel Refresher, confirm Confirmer, notify Notifier, logger Logger) *Mutator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Mutator{
		confirm:  confirm,
		notify:   notify,
		panel:    panel,
		log:      logger,
		inflight: make(map[string]bool),
	}
}

// Run executes a confirm-gated mutation for the record under key. The refetch
// starts only after the mutating call succeeded; on failure the panel's items
// are left untouched. A second Run for the same key while one is in flight
// returns ErrInFlight without issuing anything.
func (m *Mutator) Run(ctx context.Context, key, prompt, successMsg string, action func(ctx context.Context) error) error {
	if !m.confirm.Confirm(prompt) {
		return ErrCancelled
	}
	return m.Submit(ctx, key, successMsg, action)
}

// Submit executes a mutation without a confirmation prompt (form submissions).
func (m *Mutator) Submit(ctx context.Context, key, successMsg string, action func(ctx context.Context) error) error {
	if !m.acquire(key) {
		return ErrInFlight
	}
	defer m.release(key)

	if err := action(ctx); err != nil {
		m.notify.Failure(UserMessage(err))
		return err
	}
	m.notify.Success(successMsg)

	if err := m.panel.Refresh(ctx); err != nil {
		// the mutation itself succeeded; the stale collection stays rendered
		m.log.Error("refetch after mutation failed", err)
	}
	return nil
}

func (m *Mutator) acquire(key string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.inflight[key] {
		return false
	}
	m.inflight[key] = true
	return true
}

func (m *Mutator) release(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.inflight, key)
}
