package roster

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/staffdesk/staffdesk/internal/client/directory"
	"github.com/staffdesk/staffdesk/internal/client/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTimeout = time.Second
	testTick    = 5 * time.Millisecond
)

// fakeService scripts directory behavior per test.
type fakeService struct {
	listFn   func(ctx context.Context) ([]directory.Employee, error)
	createFn func(ctx context.Context, data directory.NewEmployee) (directory.Employee, error)
	updateFn func(ctx context.Context, id string, data directory.Employee) (directory.Employee, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeService) Authenticate(ctx context.Context, username, password string) (string, error) {
	return "token", nil
}

func (f *fakeService) List(ctx context.Context) ([]directory.Employee, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *fakeService) Create(ctx context.Context, data directory.NewEmployee) (directory.Employee, error) {
	if f.createFn == nil {
		return directory.Employee{}, nil
	}
	return f.createFn(ctx, data)
}

func (f *fakeService) Update(ctx context.Context, id string, data directory.Employee) (directory.Employee, error) {
	if f.updateFn == nil {
		return directory.Employee{}, nil
	}
	return f.updateFn(ctx, id, data)
}

func (f *fakeService) Delete(ctx context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

var sampleRoster = []directory.Employee{
	{ID: "1", Name: "Alice Johnson", Email: "alice@example.com", Position: "Software Engineer", Department: "Engineering"},
	{ID: "2", Name: "Bob Williams", Email: "bob@example.com", Position: "Product Manager", Department: "Product"},
	{ID: "3", Name: "Charlie Brown", Email: "charlie@example.com", Position: "UX Designer", Department: "Design"},
}

func newTestViewModel(dir directory.Service) (*ViewModel, *notify.Queue) {
	queue := notify.NewQueue()
	return NewViewModel(dir, queue), queue
}

func TestViewModel_RefreshReplacesCache(t *testing.T) {
	vm, _ := newTestViewModel(&fakeService{
		listFn: func(ctx context.Context) ([]directory.Employee, error) {
			return sampleRoster, nil
		},
	})

	vm.Refresh(context.Background())
	assert.Equal(t, sampleRoster, vm.Employees())
}

func TestViewModel_FailedRefreshKeepsCache(t *testing.T) {
	var fail bool
	vm, queue := newTestViewModel(&fakeService{
		listFn: func(ctx context.Context) ([]directory.Employee, error) {
			if fail {
				return nil, &directory.TransportError{Message: "store is down"}
			}
			return sampleRoster, nil
		},
	})

	vm.Refresh(context.Background())
	require.Equal(t, sampleRoster, vm.Employees())

	fail = true
	vm.Refresh(context.Background())

	// Stale-but-available: the previous roster stays visible.
	assert.Equal(t, sampleRoster, vm.Employees())

	notifications := queue.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, notify.KindError, notifications[0].Kind)
	assert.Equal(t, "store is down", notifications[0].Text)
}

func TestViewModel_LastIssuedRefreshWins(t *testing.T) {
	older := []directory.Employee{{ID: "old", Name: "Old"}}
	newer := []directory.Employee{{ID: "new", Name: "New"}}

	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	vm, _ := newTestViewModel(&fakeService{
		listFn: func(ctx context.Context) ([]directory.Employee, error) {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()
			if first {
				// The first call resolves only after the second finished.
				<-release
				return older, nil
			}
			return newer, nil
		},
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		vm.Refresh(context.Background())
	}()

	// Wait for the first List call to be in flight.
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, testTimeout, testTick)

	vm.Refresh(context.Background())
	require.Equal(t, newer, vm.Employees())

	close(release)
	wg.Wait()

	// The slower, superseded response never overwrites the newer one.
	assert.Equal(t, newer, vm.Employees())
}

func TestViewModel_SearchProjection(t *testing.T) {
	vm, _ := newTestViewModel(&fakeService{
		listFn: func(ctx context.Context) ([]directory.Employee, error) {
			return sampleRoster, nil
		},
	})
	vm.Refresh(context.Background())

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term matches everything", "", []string{"1", "2", "3"}},
		{"name match", "alice", []string{"1"}},
		{"email match", "BOB@EXAMPLE", []string{"2"}},
		{"position match", "designer", []string{"3"}},
		{"department match", "engineering", []string{"1"}},
		{"substring across records", "o", []string{"1", "2", "3"}},
		{"no match", "accounting", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, emp := range vm.Search(tt.term) {
				got = append(got, emp.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestViewModel_SearchDoesNotMutateCache(t *testing.T) {
	vm, _ := newTestViewModel(&fakeService{
		listFn: func(ctx context.Context) ([]directory.Employee, error) {
			return sampleRoster, nil
		},
	})
	vm.Refresh(context.Background())

	vm.Search("alice")
	assert.Equal(t, sampleRoster, vm.Employees())
}

func TestViewModel_SubmitRoutesToCreate(t *testing.T) {
	var createdWith directory.NewEmployee
	vm, queue := newTestViewModel(&fakeService{
		createFn: func(ctx context.Context, data directory.NewEmployee) (directory.Employee, error) {
			createdWith = data
			return directory.Employee{ID: "fresh", Name: data.Name}, nil
		},
	})

	vm.OpenCreate()
	vm.Submit(context.Background(), FormData{Name: "Zoe", Email: "z@x.com", Position: "Intern", Department: "Ops"})

	assert.Equal(t, "Zoe", createdWith.Name)

	mode, _ := vm.Form()
	assert.Equal(t, FormClosed, mode)

	notifications := queue.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, notify.KindSuccess, notifications[0].Kind)
}

func TestViewModel_SubmitRoutesToUpdate(t *testing.T) {
	var updatedID string
	vm, _ := newTestViewModel(&fakeService{
		updateFn: func(ctx context.Context, id string, data directory.Employee) (directory.Employee, error) {
			updatedID = id
			return data, nil
		},
	})

	vm.OpenEdit(sampleRoster[0])
	_, data := vm.Form()
	data.Position = "Staff Engineer"
	vm.Submit(context.Background(), data)

	assert.Equal(t, "1", updatedID)
	mode, _ := vm.Form()
	assert.Equal(t, FormClosed, mode)
}

func TestViewModel_FailedSubmitKeepsFormOpen(t *testing.T) {
	vm, queue := newTestViewModel(&fakeService{
		createFn: func(ctx context.Context, data directory.NewEmployee) (directory.Employee, error) {
			return directory.Employee{}, &directory.TransportError{Message: "connection refused"}
		},
	})

	vm.OpenCreate()
	entered := FormData{Name: "Zoe", Email: "z@x.com", Position: "Intern", Department: "Ops"}
	vm.Submit(context.Background(), entered)

	// No data loss: the flow stays open with the entered values.
	mode, data := vm.Form()
	assert.Equal(t, FormCreating, mode)
	assert.Equal(t, entered, data)

	notifications := queue.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, notify.KindError, notifications[0].Kind)
	assert.Equal(t, "connection refused", notifications[0].Text)
}

func TestViewModel_CancelFormDiscardsInput(t *testing.T) {
	vm, _ := newTestViewModel(&fakeService{})

	vm.OpenEdit(sampleRoster[0])
	vm.CancelForm()

	mode, data := vm.Form()
	assert.Equal(t, FormClosed, mode)
	assert.Equal(t, FormData{}, data)
}

func TestViewModel_RemoveFlow(t *testing.T) {
	var deletedID string
	vm, queue := newTestViewModel(&fakeService{
		deleteFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	})

	vm.RequestRemove(sampleRoster[1])
	target, ok := vm.PendingRemoval()
	require.True(t, ok)
	assert.Equal(t, "2", target.ID)

	vm.ConfirmRemove(context.Background())

	assert.Equal(t, "2", deletedID)
	_, ok = vm.PendingRemoval()
	assert.False(t, ok)

	notifications := queue.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, notify.KindSuccess, notifications[0].Kind)
}

func TestViewModel_CancelRemoveSkipsDelete(t *testing.T) {
	deleted := false
	vm, _ := newTestViewModel(&fakeService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	})

	vm.RequestRemove(sampleRoster[0])
	vm.CancelRemove()
	vm.ConfirmRemove(context.Background())

	assert.False(t, deleted, "cancelled removal must not reach the store")
}

func TestViewModel_FailedRemoveReturnsToIdle(t *testing.T) {
	vm, queue := newTestViewModel(&fakeService{
		deleteFn: func(ctx context.Context, id string) error {
			return directory.ErrNotFound
		},
	})

	vm.RequestRemove(sampleRoster[0])
	vm.ConfirmRemove(context.Background())

	_, ok := vm.PendingRemoval()
	assert.False(t, ok)

	notifications := queue.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, notify.KindError, notifications[0].Kind)
}
