package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"taskflow/internal/app"
	"taskflow/internal/domain"
)

// cli dispatches subcommands against the application services.
type cli struct {
	session  *app.SessionService
	projects *app.ProjectService
	tasks    *app.TaskService
	users    *app.UserService
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.logout(ctx)
	case "whoami":
		return c.whoami()
	case "projects":
		return c.listProjects(ctx)
	case "project":
		return c.showProject(ctx, args)
	case "create-project":
		return c.createProject(ctx, args)
	case "create-task":
		return c.createTask(ctx, args)
	case "users":
		return c.listUsers(ctx, args)
	case "create-user":
		return c.createUser(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireAction gates a command through the authorization table.
func (c *cli) requireAction(action domain.Action) error {
	st := c.session.State()
	if st.Status != app.StatusAuthenticated {
		return fmt.Errorf("not logged in; run `taskflow login` first")
	}
	if !c.session.Can(action) {
		return fmt.Errorf("role %q may not perform this action", st.User.Role)
	}
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.session.Login(ctx, *username, *password); err != nil {
		st := c.session.State()
		if st.Status == app.StatusFailed && st.LastError != "" {
			return fmt.Errorf("%s", st.LastError)
		}
		return err
	}

	user := c.session.State().User
	fmt.Printf("logged in as %s %s (%s)\n", user.FirstName, user.LastName, user.Role)
	return nil
}

func (c *cli) logout(ctx context.Context) error {
	if err := c.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (c *cli) whoami() error {
	st := c.session.State()
	if st.Status != app.StatusAuthenticated {
		fmt.Println("not logged in")
		return nil
	}
	u := st.User
	fmt.Printf("%s %s <%s> role=%s id=%d\n", u.FirstName, u.LastName, u.Email, u.Role, u.ID)
	return nil
}

func (c *cli) listProjects(ctx context.Context) error {
	if err := c.requireAction(domain.ActionViewDashboard); err != nil {
		return err
	}
	if err := c.projects.FetchProjects(ctx); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSTART\tEND\tHOURS\tTASKS")
	for _, p := range c.projects.Store().State().Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.2f\t%d\n",
			p.ID, p.ProjectName, p.Status, p.StartDate, p.EndDate, p.HoursConsumed, len(p.Tasks))
	}
	return w.Flush()
}

func (c *cli) showProject(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("project", flag.ContinueOnError)
	id := fs.Int64("id", 0, "project id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	if err := c.requireAction(domain.ActionViewProjectDetail); err != nil {
		return err
	}
	if err := c.projects.FetchProject(ctx, *id); err != nil {
		return err
	}

	p := c.projects.Store().State().Current
	if p == nil {
		return fmt.Errorf("project %d not loaded", *id)
	}

	fmt.Printf("%s (#%d) %s\n", p.ProjectName, p.ID, p.Status)
	if p.ProjectDescription != "" {
		fmt.Println(p.ProjectDescription)
	}
	fmt.Printf("%s .. %s, %.2f hours consumed\n\n", p.StartDate, p.EndDate, p.HoursConsumed)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTASK\tSTATUS\tASSIGNED\tSTART\tEND")
	for _, t := range p.Tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.TaskName, t.Status, t.UserAssigned, t.StartDate, t.EndDate)
	}
	return w.Flush()
}

func (c *cli) createProject(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-project", flag.ContinueOnError)
	name := fs.String("name", "", "project name")
	desc := fs.String("description", "", "project description")
	manager := fs.Int64("manager", 0, "id of the manager to assign")
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.requireAction(domain.ActionCreateProject); err != nil {
		return err
	}

	created, err := c.projects.CreateProject(ctx, domain.ProjectDraft{
		ProjectName:        *name,
		ProjectDescription: *desc,
		UserAssigned:       *manager,
		StartDate:          *start,
		EndDate:            *end,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created project %q (#%d)\n", created.ProjectName, created.ID)
	return nil
}

func (c *cli) createTask(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-task", flag.ContinueOnError)
	projectID := fs.Int64("project", 0, "project id")
	name := fs.String("name", "", "task name")
	desc := fs.String("description", "", "task description")
	assignee := fs.Int64("assignee", 0, "id of the user to assign (optional)")
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *projectID == 0 {
		return fmt.Errorf("-project is required")
	}

	if err := c.requireAction(domain.ActionCreateTask); err != nil {
		return err
	}

	if *assignee != 0 {
		if err := c.checkAssignee(ctx, *assignee); err != nil {
			return err
		}
	}

	created, err := c.tasks.CreateTask(ctx, *projectID, domain.TaskDraft{
		TaskName:        *name,
		TaskDescription: *desc,
		UserAssigned:    *assignee,
		StartDate:       *start,
		EndDate:         *end,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created task %q (#%d)\n", created.TaskName, created.ID)
	return nil
}

// checkAssignee verifies the chosen assignee is one the current role may
// assign tasks to: admins pick managers and regular users, managers only
// regular users.
func (c *cli) checkAssignee(ctx context.Context, assignee int64) error {
	role := c.session.State().User.Role
	candidates, err := c.users.FetchAssignableUsers(ctx, role)
	if err != nil {
		return err
	}
	for _, u := range candidates {
		if u.ID == assignee {
			return nil
		}
	}
	return fmt.Errorf("role %q may not assign tasks to user %d", role, assignee)
}

func (c *cli) listUsers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ContinueOnError)
	role := fs.String("role", "", "filter by role (manager|user)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.requireAction(domain.ActionListUsers); err != nil {
		return err
	}

	var items []domain.UserProfile
	switch domain.Role(*role) {
	case domain.RoleManager:
		managers, err := c.users.FetchManagers(ctx)
		if err != nil {
			return err
		}
		items = managers
	case domain.RoleUser:
		regulars, err := c.users.FetchRegularUsers(ctx)
		if err != nil {
			return err
		}
		items = regulars
	default:
		if err := c.users.FetchUsers(ctx); err != nil {
			return err
		}
		items = c.users.Store().State().Items
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tEMAIL\tROLE")
	for _, u := range items {
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t%s\n",
			u.ID, u.Username, u.FirstName, u.LastName, u.Email, u.Role)
	}
	return w.Flush()
}

func (c *cli) createUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	role := fs.String("role", "", "role (admin|manager|user)")
	password := fs.String("password", "", "password (min 6 characters)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.requireAction(domain.ActionCreateUser); err != nil {
		return err
	}

	created, err := c.users.CreateUser(ctx, domain.UserDraft{
		Username:  *username,
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Role:      domain.Role(*role),
		Password:  *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created user %s (#%d) role=%s\n", created.Username, created.ID, created.Role)
	return nil
}
