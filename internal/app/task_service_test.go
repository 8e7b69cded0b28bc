package app

import (
	"context"
	"errors"
	"testing"

	"taskflow/internal/domain"
)

type mockTaskGateway struct {
	createFn func(ctx context.Context, projectID int64, draft domain.TaskDraft) (*domain.Task, error)
	calls    int
}

func (m *mockTaskGateway) CreateTask(ctx context.Context, projectID int64, draft domain.TaskDraft) (*domain.Task, error) {
	m.calls++
	if m.createFn != nil {
		return m.createFn(ctx, projectID, draft)
	}
	return nil, errors.New("not configured")
}

func TestTaskService_CreateTask_Success(t *testing.T) {
	ctx := context.Background()

	gw := &mockTaskGateway{
		createFn: func(ctx context.Context, projectID int64, draft domain.TaskDraft) (*domain.Task, error) {
			if projectID != 7 {
				t.Errorf("projectID = %d, want 7", projectID)
			}
			return &domain.Task{ID: 1, TaskName: draft.TaskName, Status: domain.StatusCreated}, nil
		},
	}
	svc := NewTaskService(gw)

	created, err := svc.CreateTask(ctx, 7, domain.TaskDraft{
		TaskName:  "Write docs",
		StartDate: "2024-05-01",
		EndDate:   "2024-05-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.TaskName != "Write docs" {
		t.Errorf("created = %+v", created)
	}

	items := svc.Store().State().Items
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestTaskService_InvertedDatesShortCircuit(t *testing.T) {
	ctx := context.Background()
	gw := &mockTaskGateway{}
	svc := NewTaskService(gw)

	_, err := svc.CreateTask(ctx, 7, domain.TaskDraft{
		TaskName:  "Write docs",
		StartDate: "2024-05-10",
		EndDate:   "2024-05-01",
	})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Message != "End date must be after start date" {
		t.Errorf("message = %q", verr.Message)
	}
	if gw.calls != 0 {
		t.Error("validation failure must not issue a remote call")
	}

	st := svc.Store().State()
	if st.Loading {
		t.Error("loading must remain false after a validation failure")
	}
	if st.Err != "" {
		t.Error("validation failures are not written into store error state")
	}
}

func TestTaskService_MissingNameShortCircuits(t *testing.T) {
	ctx := context.Background()
	gw := &mockTaskGateway{}
	svc := NewTaskService(gw)

	_, err := svc.CreateTask(ctx, 7, domain.TaskDraft{
		StartDate: "2024-05-01",
		EndDate:   "2024-05-10",
	})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Message != "Task name is required" {
		t.Errorf("message = %q", verr.Message)
	}
	if gw.calls != 0 {
		t.Error("validation failure must not issue a remote call")
	}
}

func TestTaskService_RemoteFailureKeepsItems(t *testing.T) {
	ctx := context.Background()

	fail := false
	gw := &mockTaskGateway{
		createFn: func(ctx context.Context, projectID int64, draft domain.TaskDraft) (*domain.Task, error) {
			if fail {
				return nil, &domain.RemoteError{Status: 400, Message: "rejected"}
			}
			return &domain.Task{ID: 1, TaskName: draft.TaskName}, nil
		},
	}
	svc := NewTaskService(gw)

	draft := domain.TaskDraft{TaskName: "one", StartDate: "2024-05-01", EndDate: "2024-05-10"}
	if _, err := svc.CreateTask(ctx, 1, draft); err != nil {
		t.Fatalf("create: %v", err)
	}

	fail = true
	if _, err := svc.CreateTask(ctx, 1, draft); err == nil {
		t.Fatal("expected failure")
	}

	st := svc.Store().State()
	if len(st.Items) != 1 {
		t.Errorf("failure mutated items: %v", st.Items)
	}
	if st.Err != "rejected" {
		t.Errorf("err = %q", st.Err)
	}
}
