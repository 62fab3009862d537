package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cosebhq/ganttd/internal/cli"
	"github.com/cosebhq/ganttd/internal/db"
	"github.com/cosebhq/ganttd/internal/notify"
	"github.com/cosebhq/ganttd/internal/repository"
	"github.com/cosebhq/ganttd/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.ganttd/ganttd.db
	dbPath := os.Getenv("GANTTD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".ganttd", "ganttd.db")
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	taskRepo := repository.NewSQLiteTaskRepo(database)
	linkRepo := repository.NewSQLiteLinkRepo(database)
	commentRepo := repository.NewSQLiteCommentRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry goes to stderr only when asked for; notification
	// delivery is logged there either way so a piped invocation still
	// records what was (not) sent.
	var observerOut io.Writer
	if os.Getenv("GANTTD_VERBOSE") != "" {
		observerOut = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(observerOut)

	// Only log notification delivery when a human is watching; the
	// transport itself is a stand-in until a mail sender is wired.
	var notifierOut io.Writer
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		notifierOut = os.Stderr
	}
	dispatcher := notify.NewDispatcher(notify.NewLogNotifier(notifierOut), os.Stderr, notify.DefaultTimeout)

	app := &cli.App{
		Tasks:     service.NewTaskService(taskRepo, commentRepo, uow, observer),
		Status:    service.NewStatusService(taskRepo, linkRepo, dispatcher, observer),
		Links:     service.NewLinkService(taskRepo, linkRepo, uow, observer),
		Requester: os.Getenv("GANTTD_USER"),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
