package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

type stubTaskRepo struct {
	tasks  map[int64]*domain.Task
	nextID int64
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[int64]*domain.Task), nextID: 1}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	// mirrors the partial unique index on (owner_id, idempotency_key)
	if task.IdempotencyKey != "" {
		for _, t := range r.tasks {
			if t.OwnerID == task.OwnerID && t.IdempotencyKey == task.IdempotencyKey {
				return nil, domain.ErrTaskExists
			}
		}
	}
	copy := cloneTask(task)
	copy.ID = r.nextID
	r.nextID++
	r.tasks[copy.ID] = cloneTask(copy)
	return cloneTask(copy), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) FindByIdempotencyKey(_ context.Context, ownerID int64, key string) (*domain.Task, error) {
	for _, t := range r.tasks {
		if t.OwnerID == ownerID && t.IdempotencyKey == key {
			return cloneTask(t), nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *stubTaskRepo) ListAll(_ context.Context) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		out = append(out, cloneTask(t))
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = cloneTask(task)
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type stubIdem struct {
	marked map[string]bool
	fail   bool
}

func newStubIdem() *stubIdem {
	return &stubIdem{marked: make(map[string]bool)}
}

func (s *stubIdem) key(ownerID int64, key string) string {
	return fmt.Sprintf("%d:%s", ownerID, key)
}

func (s *stubIdem) Seen(_ context.Context, ownerID int64, key string) (bool, error) {
	if s.fail {
		return false, errors.New("redis down")
	}
	return s.marked[s.key(ownerID, key)], nil
}

func (s *stubIdem) Mark(_ context.Context, ownerID int64, key string) error {
	if s.fail {
		return errors.New("redis down")
	}
	s.marked[s.key(ownerID, key)] = true
	return nil
}

var (
	alice = domain.Identity{ID: 1, Username: "alice", Role: domain.RoleUser}
	bob   = domain.Identity{ID: 2, Username: "bob", Role: domain.RoleUser}
	mona  = domain.Identity{ID: 3, Username: "mona", Role: domain.RoleManager}
)

func newTaskService(repo ports.TaskRepository, idem IdempotencyChecker) *TaskService {
	return NewTaskService(repo, idem, zerolog.Nop())
}

func createInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{Title: "write report", Description: "quarterly numbers", Priority: 3}
}

func TestTaskService_CreateAndListOwn(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), newStubIdem())

	result, err := svc.Create(context.Background(), alice, createInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if result.AlreadyExisted {
		t.Fatalf("fresh create reported as replay")
	}
	if result.Task.OwnerID != alice.ID {
		t.Fatalf("expected owner %d, got %d", alice.ID, result.Task.OwnerID)
	}

	own, err := svc.ListOwn(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListOwn returned error: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("expected 1 task, got %d", len(own))
	}

	other, err := svc.ListOwn(context.Background(), bob)
	if err != nil {
		t.Fatalf("ListOwn returned error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("bob should see no tasks, got %d", len(other))
	}
}

func TestTaskService_Create_IdempotentReplay(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), newStubIdem())

	in := createInput()
	in.IdempotencyKey = "key-1"

	first, err := svc.Create(context.Background(), alice, in)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second, err := svc.Create(context.Background(), alice, in)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !second.AlreadyExisted {
		t.Fatalf("replay not detected")
	}
	if second.Task.ID != first.Task.ID {
		t.Fatalf("replay returned a different task: %d vs %d", second.Task.ID, first.Task.ID)
	}
}

// Same key from a different owner must not collide.
func TestTaskService_Create_IdempotencyKeyScopedToOwner(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), newStubIdem())

	in := createInput()
	in.IdempotencyKey = "key-1"

	a, err := svc.Create(context.Background(), alice, in)
	if err != nil {
		t.Fatalf("create for alice failed: %v", err)
	}
	b, err := svc.Create(context.Background(), bob, in)
	if err != nil {
		t.Fatalf("create for bob failed: %v", err)
	}
	if b.AlreadyExisted || b.Task.ID == a.Task.ID {
		t.Fatalf("idempotency key leaked across owners")
	}
}

// An expired or evicted cache entry answers "not seen" for a genuine replay;
// the insert then hits the unique key column and the original task is returned.
func TestTaskService_Create_ExpiredCacheEntryReplay(t *testing.T) {
	idem := newStubIdem()
	svc := newTaskService(newStubTaskRepo(), idem)

	in := createInput()
	in.IdempotencyKey = "key-1"

	first, err := svc.Create(context.Background(), alice, in)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// entry expires
	idem.marked = make(map[string]bool)

	second, err := svc.Create(context.Background(), alice, in)
	if err != nil {
		t.Fatalf("replay should return the original task, got error: %v", err)
	}
	if !second.AlreadyExisted {
		t.Fatalf("replay not detected")
	}
	if second.Task.ID != first.Task.ID {
		t.Fatalf("replay returned a different task: %d vs %d", second.Task.ID, first.Task.ID)
	}
	if !idem.marked[idem.key(alice.ID, "key-1")] {
		t.Fatalf("expected key to be re-marked after fallback")
	}
}

// Redis being down must not block creation; the store column still catches replays.
func TestTaskService_Create_IdemCheckerDown(t *testing.T) {
	idem := newStubIdem()
	idem.fail = true
	svc := newTaskService(newStubTaskRepo(), idem)

	in := createInput()
	in.IdempotencyKey = "key-1"

	if _, err := svc.Create(context.Background(), alice, in); err != nil {
		t.Fatalf("create with failing checker returned error: %v", err)
	}

	second, err := svc.Create(context.Background(), alice, in)
	if err != nil {
		t.Fatalf("replay with failing checker returned error: %v", err)
	}
	if !second.AlreadyExisted {
		t.Fatalf("store-backed replay not detected")
	}
}

func TestTaskService_Update_OwnershipEnforced(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), newStubIdem())

	created, err := svc.Create(context.Background(), alice, createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	update := ports.UpdateTaskInput{Title: "updated", Description: "new text", Priority: 5, Completed: true}

	if err := svc.Update(context.Background(), bob, created.Task.ID, update); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Update(context.Background(), alice, created.Task.ID, update); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}

	own, _ := svc.ListOwn(context.Background(), alice)
	if len(own) != 1 || own[0].Title != "updated" || !own[0].Completed {
		t.Fatalf("update not applied: %+v", own)
	}
}

func TestTaskService_Update_NotFound(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), newStubIdem())

	err := svc.Update(context.Background(), alice, 99, ports.UpdateTaskInput{Title: "x", Description: "y", Priority: 1})
	if err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Delete_OwnershipEnforced(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), newStubIdem())

	created, _ := svc.Create(context.Background(), alice, createInput())

	if err := svc.Delete(context.Background(), bob, created.Task.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), alice, created.Task.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), alice, created.Task.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestTaskService_ManagerOperations(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), newStubIdem())

	a, _ := svc.Create(context.Background(), alice, createInput())
	_, _ = svc.Create(context.Background(), bob, createInput())

	if _, err := svc.ListAll(context.Background(), alice); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-manager ListAll, got %v", err)
	}

	all, err := svc.ListAll(context.Background(), mona)
	if err != nil {
		t.Fatalf("manager ListAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(all))
	}

	if err := svc.DeleteAny(context.Background(), bob, a.Task.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-manager DeleteAny, got %v", err)
	}
	if err := svc.DeleteAny(context.Background(), mona, a.Task.ID); err != nil {
		t.Fatalf("manager DeleteAny failed: %v", err)
	}
	if err := svc.DeleteAny(context.Background(), mona, a.Task.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound for deleted task, got %v", err)
	}
}
