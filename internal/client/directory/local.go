package directory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	localUsername = "admin"
	localPassword = "password"
)

// Local is an in-memory implementation of Service. It stands in for the
// remote API in development and tests: same credential gate, same id
// assignment, same error taxonomy, optionally with simulated latency.
type Local struct {
	mu      sync.Mutex
	byID    map[string]Employee
	order   []string
	tokens  map[string]struct{}
	source  TokenSource
	latency time.Duration
}

type LocalOption func(*Local)

// WithLatency makes every operation wait the given duration before
// completing, honoring context cancellation.
func WithLatency(d time.Duration) LocalOption {
	return func(l *Local) {
		l.latency = d
	}
}

// WithSeed pre-populates the store.
func WithSeed(employees []NewEmployee) LocalOption {
	return func(l *Local) {
		for _, data := range employees {
			l.insert(data)
		}
	}
}

func NewLocal(tokens TokenSource, opts ...LocalOption) *Local {
	l := &Local{
		byID:   make(map[string]Employee),
		tokens: make(map[string]struct{}),
		source: tokens,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SeedRoster is the default development roster.
func SeedRoster() []NewEmployee {
	return []NewEmployee{
		{Name: "Alice Johnson", Email: "alice.johnson@example.com", Position: "Software Engineer", Department: "Engineering"},
		{Name: "Bob Williams", Email: "bob.williams@example.com", Position: "Product Manager", Department: "Product"},
		{Name: "Charlie Brown", Email: "charlie.brown@example.com", Position: "UX Designer", Department: "Design"},
		{Name: "Diana Miller", Email: "diana.miller@example.com", Position: "QA Engineer", Department: "Engineering"},
		{Name: "Ethan Davis", Email: "ethan.davis@example.com", Position: "HR Specialist", Department: "Human Resources"},
	}
}

func (l *Local) insert(data NewEmployee) Employee {
	emp := Employee{
		ID:         uuid.NewString(),
		Name:       data.Name,
		Email:      data.Email,
		Position:   data.Position,
		Department: data.Department,
	}
	l.byID[emp.ID] = emp
	l.order = append(l.order, emp.ID)
	return emp
}

func (l *Local) wait(ctx context.Context) error {
	if l.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(l.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (l *Local) authorize() error {
	token, ok := l.source.Token()
	if !ok {
		return ErrUnauthenticated
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, issued := l.tokens[token]; !issued {
		return ErrUnauthenticated
	}
	return nil
}

// Authenticate implements Service.
func (l *Local) Authenticate(ctx context.Context, username, password string) (string, error) {
	if err := l.wait(ctx); err != nil {
		return "", err
	}
	if username != localUsername || password != localPassword {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	l.mu.Lock()
	l.tokens[token] = struct{}{}
	l.mu.Unlock()
	return token, nil
}

// List implements Service.
func (l *Local) List(ctx context.Context) ([]Employee, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	if err := l.authorize(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	employees := make([]Employee, 0, len(l.order))
	for _, id := range l.order {
		employees = append(employees, l.byID[id])
	}
	return employees, nil
}

// Create implements Service.
func (l *Local) Create(ctx context.Context, data NewEmployee) (Employee, error) {
	if err := l.wait(ctx); err != nil {
		return Employee{}, err
	}
	if err := l.authorize(); err != nil {
		return Employee{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.insert(data), nil
}

// Update implements Service.
func (l *Local) Update(ctx context.Context, id string, data Employee) (Employee, error) {
	if err := l.wait(ctx); err != nil {
		return Employee{}, err
	}
	if err := l.authorize(); err != nil {
		return Employee{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing, ok := l.byID[id]
	if !ok {
		return Employee{}, ErrNotFound
	}

	existing.Name = data.Name
	existing.Email = data.Email
	existing.Position = data.Position
	existing.Department = data.Department
	l.byID[id] = existing
	return existing, nil
}

// Delete implements Service. A second delete of the same id fails with
// ErrNotFound.
func (l *Local) Delete(ctx context.Context, id string) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	if err := l.authorize(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byID[id]; !ok {
		return ErrNotFound
	}
	delete(l.byID, id)
	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}
