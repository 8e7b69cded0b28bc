package app

import (
	"context"
	"errors"
	"testing"

	"taskflow/internal/domain"
)

type mockProjectGateway struct {
	listFn   func(ctx context.Context) ([]domain.Project, error)
	getFn    func(ctx context.Context, id int64) (*domain.Project, error)
	createFn func(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error)
	calls    int
}

func (m *mockProjectGateway) ListProjects(ctx context.Context) ([]domain.Project, error) {
	m.calls++
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockProjectGateway) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	m.calls++
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errors.New("not configured")
}

func (m *mockProjectGateway) CreateProject(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
	m.calls++
	if m.createFn != nil {
		return m.createFn(ctx, draft)
	}
	return nil, errors.New("not configured")
}

func validProjectDraft() domain.ProjectDraft {
	return domain.ProjectDraft{
		ProjectName:  "Website Redesign",
		UserAssigned: 2,
		StartDate:    "2024-05-01",
		EndDate:      "2024-05-10",
	}
}

func TestProjectService_FetchProjects_ReplacesItems(t *testing.T) {
	ctx := context.Background()

	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			return []domain.Project{{ID: 1, ProjectName: "P1"}, {ID: 2, ProjectName: "P2"}}, nil
		},
	}
	svc := NewProjectService(gw)

	if err := svc.FetchProjects(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	st := svc.Store().State()
	if st.Loading || st.Err != "" {
		t.Errorf("unexpected state: %+v", st)
	}
	if len(st.Items) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(st.Items))
	}
}

func TestProjectService_FetchFailureKeepsLastGoodItems(t *testing.T) {
	ctx := context.Background()

	fail := false
	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			if fail {
				return nil, &domain.RemoteError{Status: 500, Message: "server exploded"}
			}
			return []domain.Project{{ID: 1, ProjectName: "P1"}}, nil
		},
	}
	svc := NewProjectService(gw)

	if err := svc.FetchProjects(ctx); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	fail = true
	if err := svc.FetchProjects(ctx); err == nil {
		t.Fatal("expected fetch failure")
	}

	st := svc.Store().State()
	if st.Err != "server exploded" {
		t.Errorf("err = %q", st.Err)
	}
	if len(st.Items) != 1 || st.Items[0].ProjectName != "P1" {
		t.Errorf("failure mutated items: %v", st.Items)
	}
}

func TestProjectService_FetchProject_SetsCurrent(t *testing.T) {
	ctx := context.Background()

	gw := &mockProjectGateway{
		getFn: func(ctx context.Context, id int64) (*domain.Project, error) {
			return &domain.Project{ID: id, ProjectName: "Detail", Tasks: []domain.Task{{ID: 9}}}, nil
		},
	}
	svc := NewProjectService(gw)

	if err := svc.FetchProject(ctx, 3); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	cur := svc.Store().State().Current
	if cur == nil || cur.ID != 3 || len(cur.Tasks) != 1 {
		t.Errorf("current = %+v", cur)
	}

	svc.ClearCurrent()
	if svc.Store().State().Current != nil {
		t.Error("ClearCurrent should drop the detail slot")
	}
}

func TestProjectService_CreateProject_Appends(t *testing.T) {
	ctx := context.Background()

	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			return []domain.Project{{ID: 1, ProjectName: "P1"}}, nil
		},
		createFn: func(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
			return &domain.Project{ID: 2, ProjectName: draft.ProjectName}, nil
		},
	}
	svc := NewProjectService(gw)
	_ = svc.FetchProjects(ctx)

	created, err := svc.CreateProject(ctx, validProjectDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 2 {
		t.Errorf("created id = %d", created.ID)
	}

	items := svc.Store().State().Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("order not preserved: %v", items)
	}
}

func TestProjectService_CreateProject_ValidationShortCircuits(t *testing.T) {
	ctx := context.Background()
	gw := &mockProjectGateway{}
	svc := NewProjectService(gw)

	cases := []struct {
		name    string
		mutate  func(*domain.ProjectDraft)
		message string
	}{
		{"missing name", func(d *domain.ProjectDraft) { d.ProjectName = "  " }, "Project name is required"},
		{"missing manager", func(d *domain.ProjectDraft) { d.UserAssigned = 0 }, "Please assign a manager to the project"},
		{"missing dates", func(d *domain.ProjectDraft) { d.StartDate = "" }, "Start date and end date are required"},
		{"inverted dates", func(d *domain.ProjectDraft) { d.StartDate = "2024-05-10"; d.EndDate = "2024-05-01" }, "End date must be after start date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validProjectDraft()
			tc.mutate(&draft)

			_, err := svc.CreateProject(ctx, draft)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Message != tc.message {
				t.Errorf("message = %q, want %q", verr.Message, tc.message)
			}
		})
	}

	if gw.calls != 0 {
		t.Error("validation failures must not reach the network")
	}
	st := svc.Store().State()
	if st.Loading || st.Err != "" {
		t.Errorf("validation failure leaked into store state: %+v", st)
	}
}

func TestProjectService_EqualDatesAreValid(t *testing.T) {
	ctx := context.Background()

	gw := &mockProjectGateway{
		createFn: func(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
			return &domain.Project{ID: 5, ProjectName: draft.ProjectName}, nil
		},
	}
	svc := NewProjectService(gw)

	draft := validProjectDraft()
	draft.StartDate = "2024-05-01"
	draft.EndDate = "2024-05-01"

	if _, err := svc.CreateProject(ctx, draft); err != nil {
		t.Fatalf("equal dates should pass validation: %v", err)
	}
}

func TestProjectService_InvalidateDiscardsLateResponse(t *testing.T) {
	ctx := context.Background()

	var svc *ProjectService
	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			// Simulate the user navigating away while the request is
			// still in flight.
			svc.Invalidate()
			return []domain.Project{{ID: 99, ProjectName: "stale"}}, nil
		},
	}
	svc = NewProjectService(gw)

	if err := svc.FetchProjects(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	st := svc.Store().State()
	if len(st.Items) != 0 {
		t.Errorf("stale response updated the store: %v", st.Items)
	}
}
