package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"taskflow/internal/adapter/rest"
	"taskflow/internal/adapter/sqlite"
	"taskflow/internal/app"
	"taskflow/internal/config"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

const usage = `usage: taskflow <command> [flags]

commands:
  login           authenticate and store the session
  logout          clear the stored session
  whoami          show the current identity
  projects        list projects
  project         show one project with its tasks
  create-project  create a project (admin)
  create-task     create a task inside a project (admin, manager)
  users           list users (admin)
  create-user     create a user (admin)
`

// lazySource defers to the session service once it exists; the REST
// client and the session service reference each other.
type lazySource struct {
	src oauth2.TokenSource
}

func (l *lazySource) Token() (*oauth2.Token, error) {
	if l.src == nil {
		return nil, fmt.Errorf("token source not initialized")
	}
	return l.src.Token()
}

func main() {
	log.SetFlags(0)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not read .env: %v", err)
	}
	cfg := config.Load()

	creds, err := sqlite.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("open credential store: %v", err)
	}
	defer func() { _ = creds.Close() }()

	tokens := &lazySource{}
	client, err := rest.NewClient(cfg.APIBaseURL, tokens, cfg.HTTPTimeout)
	if err != nil {
		log.Fatalf("configure api client: %v", err)
	}

	session := app.NewSessionService(client, creds)
	tokens.src = session

	cli := &cli{
		session:  session,
		projects: app.NewProjectService(client),
		tasks:    app.NewTaskService(client),
		users:    app.NewUserService(client),
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	if err := session.Restore(ctx); err != nil {
		log.Fatalf("restore session: %v", err)
	}

	if err := cli.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		log.Fatalf("%v", err)
	}
}
