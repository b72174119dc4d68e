// Package directory defines the employee directory contract used by the
// roster client, with interchangeable remote (HTTP) and local (in-memory)
// implementations behind one interface.
package directory

import "context"

type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Department string `json:"department"`
}

// NewEmployee carries the descriptive fields of a create request; the
// directory assigns the id.
type NewEmployee struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Department string `json:"department"`
}

// Service is the directory boundary.
//
// Contract:
//   - Authenticate issues a session token for an accepted credential pair.
//   - Every other operation requires a current session token and fails with
//     ErrUnauthenticated, without contacting the store, when none is held.
//   - List returns the full roster in store order and reflects every
//     committed mutation, including those from other sessions on the same
//     store.
//   - Update merges the supplied record onto the existing one; the id never
//     changes. Update and Delete fail with ErrNotFound for unknown ids, and
//     a repeat Delete of the same id fails the same way.
//
// All methods honor context cancellation.
type Service interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, data NewEmployee) (Employee, error)
	Update(ctx context.Context, id string, data Employee) (Employee, error)
	Delete(ctx context.Context, id string) error
}

// TokenSource supplies the current session token. The session store
// satisfies it.
type TokenSource interface {
	Token() (string, bool)
}
