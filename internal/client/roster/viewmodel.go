// Package roster is the client-held view of the employee directory: the
// cached roster, the search projection over it, and the add/edit/delete
// flows that keep the cache in sync with the store.
package roster

import (
	"context"
	"strings"
	"sync"

	"github.com/staffdesk/staffdesk/internal/client/directory"
	"github.com/staffdesk/staffdesk/internal/client/notify"
)

// FormMode is the state of the add/edit flow.
type FormMode int

const (
	FormClosed FormMode = iota
	FormCreating
	FormEditing
)

// FormData carries the add/edit input. An empty ID means create.
type FormData struct {
	ID         string
	Name       string
	Email      string
	Position   string
	Department string
}

// ViewModel owns the in-memory roster cache. The cache is replaced
// wholesale after every successful fetch, never diffed.
type ViewModel struct {
	mu     sync.Mutex
	dir    directory.Service
	notify *notify.Queue

	cache      []directory.Employee
	refreshSeq uint64

	formMode FormMode
	formData FormData

	pendingRemoval *directory.Employee
	busy           bool
}

func NewViewModel(dir directory.Service, queue *notify.Queue) *ViewModel {
	return &ViewModel{
		dir:    dir,
		notify: queue,
	}
}

// Refresh fetches the full roster and replaces the cache. When refreshes
// overlap, the last-issued call wins: completions of superseded calls are
// discarded, errors included. A failed current refresh queues an error
// notification and leaves the previous cache intact.
func (vm *ViewModel) Refresh(ctx context.Context) {
	vm.mu.Lock()
	vm.refreshSeq++
	seq := vm.refreshSeq
	vm.mu.Unlock()

	employees, err := vm.dir.List(ctx)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if seq != vm.refreshSeq {
		// A newer refresh was issued while this one was in flight.
		return
	}
	if err != nil {
		vm.notify.Error(err.Error())
		return
	}
	vm.cache = employees
}

// Employees returns a snapshot of the cached roster.
func (vm *ViewModel) Employees() []directory.Employee {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	snapshot := make([]directory.Employee, len(vm.cache))
	copy(snapshot, vm.cache)
	return snapshot
}

// Search projects the cache through a case-insensitive substring match
// against name, email, position, and department. The empty term matches
// everything. The cache itself is untouched.
func (vm *ViewModel) Search(term string) []directory.Employee {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	needle := strings.ToLower(term)
	var matches []directory.Employee
	for _, emp := range vm.cache {
		if strings.Contains(strings.ToLower(emp.Name), needle) ||
			strings.Contains(strings.ToLower(emp.Email), needle) ||
			strings.Contains(strings.ToLower(emp.Position), needle) ||
			strings.Contains(strings.ToLower(emp.Department), needle) {
			matches = append(matches, emp)
		}
	}
	return matches
}

// OpenCreate opens the form for a new employee.
func (vm *ViewModel) OpenCreate() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.formMode = FormCreating
	vm.formData = FormData{}
}

// OpenEdit opens the form pre-filled with an existing record.
func (vm *ViewModel) OpenEdit(emp directory.Employee) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.formMode = FormEditing
	vm.formData = FormData{
		ID:         emp.ID,
		Name:       emp.Name,
		Email:      emp.Email,
		Position:   emp.Position,
		Department: emp.Department,
	}
}

// CancelForm discards the pending input without side effects.
func (vm *ViewModel) CancelForm() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.formMode = FormClosed
	vm.formData = FormData{}
}

// Form returns the current form state.
func (vm *ViewModel) Form() (FormMode, FormData) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.formMode, vm.formData
}

// Submit routes to create or update depending on whether the data carries an
// id. On success the form closes, the roster resyncs from the store, and a
// success notification is queued. On failure the form stays open with the
// entered values so nothing is lost on retry.
func (vm *ViewModel) Submit(ctx context.Context, data FormData) {
	vm.mu.Lock()
	if vm.busy {
		vm.mu.Unlock()
		return
	}
	vm.busy = true
	vm.formData = data
	vm.mu.Unlock()

	var err error
	var message string
	if data.ID != "" {
		_, err = vm.dir.Update(ctx, data.ID, directory.Employee{
			ID:         data.ID,
			Name:       data.Name,
			Email:      data.Email,
			Position:   data.Position,
			Department: data.Department,
		})
		message = "Employee updated successfully."
	} else {
		_, err = vm.dir.Create(ctx, directory.NewEmployee{
			Name:       data.Name,
			Email:      data.Email,
			Position:   data.Position,
			Department: data.Department,
		})
		message = "Employee added successfully."
	}

	vm.mu.Lock()
	vm.busy = false
	if err != nil {
		vm.mu.Unlock()
		vm.notify.Error(err.Error())
		return
	}
	vm.formMode = FormClosed
	vm.formData = FormData{}
	vm.mu.Unlock()

	vm.notify.Success(message)
	vm.Refresh(ctx)
}

// RequestRemove marks an employee for deletion pending confirmation.
func (vm *ViewModel) RequestRemove(emp directory.Employee) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	target := emp
	vm.pendingRemoval = &target
}

// PendingRemoval returns the employee awaiting delete confirmation, if any.
func (vm *ViewModel) PendingRemoval() (directory.Employee, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.pendingRemoval == nil {
		return directory.Employee{}, false
	}
	return *vm.pendingRemoval, true
}

// CancelRemove abandons the pending deletion; nothing is attempted against
// the store.
func (vm *ViewModel) CancelRemove() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.pendingRemoval = nil
}

// ConfirmRemove deletes the pending employee, resyncs the roster, and
// queues the outcome. The flow returns to idle either way.
func (vm *ViewModel) ConfirmRemove(ctx context.Context) {
	vm.mu.Lock()
	if vm.pendingRemoval == nil || vm.busy {
		vm.mu.Unlock()
		return
	}
	vm.busy = true
	target := *vm.pendingRemoval
	vm.mu.Unlock()

	err := vm.dir.Delete(ctx, target.ID)

	vm.mu.Lock()
	vm.busy = false
	vm.pendingRemoval = nil
	vm.mu.Unlock()

	if err != nil {
		vm.notify.Error(err.Error())
		return
	}

	vm.notify.Success("Employee deleted successfully.")
	vm.Refresh(ctx)
}

// Busy reports whether a mutation is outstanding; front-ends disable the
// triggering control while it is set.
func (vm *ViewModel) Busy() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.busy
}
