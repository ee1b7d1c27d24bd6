package review

import (
	"context"
	"fmt"
	"sync"

	"github.com/novamkr/web-vitals/pkg/models/domain"
)

// Store persists reports between review edits.
type Store interface {
	Save(ctx context.Context, report domain.Report) error
	Get(ctx context.Context, id string) (domain.Report, error)
	List(ctx context.Context) ([]domain.Report, error)
	Delete(ctx context.Context, id string) error
}

// Manager opens one Session per report, backed by a Store, and fans out
// every committed edit to live subscribers.
type Manager struct {
	store Store

	mu          sync.Mutex
	sessions    map[string]*Session
	subscribers map[string]map[chan domain.Report]struct{}
}

func NewManager(store Store) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("report store cannot be nil")
	}
	return &Manager{
		store:       store,
		sessions:    make(map[string]*Session),
		subscribers: make(map[string]map[chan domain.Report]struct{}),
	}, nil
}

// Open returns the live session for id, loading it from the store on first
// use.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	report, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s := NewSession(report, WithCommit(m.commit))
	m.sessions[id] = s
	return s, nil
}

// Create stores a freshly audited report and opens a session for it.
func (m *Manager) Create(ctx context.Context, report domain.Report) (*Session, error) {
	s := NewSession(report, WithCommit(m.commit))
	snapshot := s.Snapshot()
	if err := m.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	m.mu.Lock()
	m.sessions[snapshot.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(ctx context.Context, id string) (domain.Report, error) {
	s, err := m.Open(ctx, id)
	if err != nil {
		return domain.Report{}, err
	}
	return s.Snapshot(), nil
}

func (m *Manager) List(ctx context.Context) ([]domain.Report, error) {
	return m.store.List(ctx)
}

// Delete removes a report from the store and forgets its session. Live
// subscribers stay attached but receive no further revisions.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	delete(m.sessions, id)
	return nil
}

func (m *Manager) RemoveIssues(ctx context.Context, id string, req RemoveRequest) (domain.Report, error) {
	s, err := m.Open(ctx, id)
	if err != nil {
		return domain.Report{}, err
	}
	return s.RemoveIssues(ctx, req)
}

func (m *Manager) Annotate(ctx context.Context, id string, req AnnotateRequest) (domain.Report, error) {
	s, err := m.Open(ctx, id)
	if err != nil {
		return domain.Report{}, err
	}
	return s.Annotate(ctx, req)
}

// Subscribe delivers every committed version of report id until cancel is
// called. Slow subscribers miss intermediate versions, never the latest.
func (m *Manager) Subscribe(id string) (<-chan domain.Report, func()) {
	ch := make(chan domain.Report, 1)

	m.mu.Lock()
	if m.subscribers[id] == nil {
		m.subscribers[id] = make(map[chan domain.Report]struct{})
	}
	m.subscribers[id][ch] = struct{}{}
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subscribers[id], ch)
			if len(m.subscribers[id]) == 0 {
				delete(m.subscribers, id)
			}
			m.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (m *Manager) commit(ctx context.Context, report domain.Report) error {
	if err := m.store.Save(ctx, report); err != nil {
		return err
	}
	m.publish(report)
	return nil
}

func (m *Manager) publish(report domain.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for ch := range m.subscribers[report.ID] {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- report.Clone():
		default:
		}
	}
}
