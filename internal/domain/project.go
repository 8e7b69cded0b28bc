package domain

import "context"

// Status is the lifecycle state of a project or task. The server owns
// status transitions; the client only displays them.
type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusInProgress Status = "IN PROGRESS"
	StatusOverdue    Status = "OVERDUE"
	StatusCompleted  Status = "COMPLETED"
)

// Project is a project as returned by the API, with its tasks nested.
// Dates are YYYY-MM-DD strings on the wire and are kept as such.
type Project struct {
	ID                 int64   `json:"id"`
	ProjectName        string  `json:"project_name"`
	ProjectDescription string  `json:"project_description"`
	Status             Status  `json:"status"`
	HoursConsumed      float64 `json:"hours_consumed"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	UserAssigned       int64   `json:"user_assigned,omitempty"`
	Tasks              []Task  `json:"tasks"`
}

// Task is a task nested under exactly one project. Tasks have no
// independent lifecycle in this client; they are created only through a
// project-scoped call. UserAssigned is the assignee's display name in
// read payloads.
type Task struct {
	ID              int64   `json:"id"`
	TaskName        string  `json:"task_name"`
	TaskDescription string  `json:"task_description"`
	Status          Status  `json:"status"`
	HoursConsumed   float64 `json:"hours_consumed"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	UserAssigned    string  `json:"user_assigned,omitempty"`
	CompletedAt     string  `json:"completed_at,omitempty"`
}

// ProjectDraft is the request body for creating a project. UserAssigned
// is the id of the manager responsible for the project.
type ProjectDraft struct {
	ProjectName        string `json:"project_name"`
	ProjectDescription string `json:"project_description"`
	UserAssigned       int64  `json:"user_assigned"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
}

// TaskDraft is the request body for creating a task inside a project.
// UserAssigned is the assignee's user id; zero means unassigned.
type TaskDraft struct {
	TaskName        string `json:"task_name"`
	TaskDescription string `json:"task_description"`
	UserAssigned    int64  `json:"user_assigned,omitempty"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
}

// ProjectGateway defines the port for remote project operations.
type ProjectGateway interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id int64) (*Project, error)
	CreateProject(ctx context.Context, draft ProjectDraft) (*Project, error)
}

// TaskGateway defines the port for remote task operations.
type TaskGateway interface {
	CreateTask(ctx context.Context, projectID int64, draft TaskDraft) (*Task, error)
}
