package app

import (
	"fmt"

	"github.com/chuwg/taskflow/internal/config"
	"github.com/chuwg/taskflow/internal/database"
	"github.com/chuwg/taskflow/internal/event_bus"
	"github.com/chuwg/taskflow/internal/storage"
	"github.com/chuwg/taskflow/internal/utils"
	"github.com/chuwg/taskflow/pkg/calendar"
	"github.com/chuwg/taskflow/pkg/finance"
	"github.com/chuwg/taskflow/pkg/google"
	"github.com/chuwg/taskflow/pkg/integration"
	"github.com/chuwg/taskflow/pkg/note"
	"github.com/chuwg/taskflow/pkg/todo"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Store storage.BlobStore
	Bus   *event_bus.EventBus
	Clock utils.Clock

	CalendarRepo    *calendar.BlobRepository
	CalendarService *calendar.Service
	CalendarHandler *calendar.Handler

	TodoRepo    *todo.BlobRepository
	TodoService *todo.ServiceImpl
	TodoHandler *todo.Handler

	FinanceRepo    *finance.BlobRepository
	FinanceService *finance.ServiceImpl
	FinanceHandler *finance.Handler

	NoteRepo    *note.BlobRepository
	NoteService *note.ServiceImpl
	NoteHandler *note.Handler

	Syncer *integration.Syncer

	GoogleAuth     *google.Auth
	GoogleExporter *google.Exporter
	GoogleHandler  *google.Handler
}

// NewBlobStore builds the configured storage backend.
func NewBlobStore(cfg config.Application) (storage.BlobStore, error) {
	switch cfg.Storage.Backend {
	case "", "disk":
		return storage.NewDiskStore(cfg.Storage.Path), nil
	case "postgres":
		pool, err := database.Open(cfg.Storage.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(cfg.Storage.Database); err != nil {
			return nil, err
		}
		return storage.NewPostgresStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// BuildDependencies initializes and wires all application services and
// handlers, including the shadow event subscriptions.
func BuildDependencies(store storage.BlobStore, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Store = store
	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.CalendarRepo = calendar.NewBlobRepository(store)
	deps.CalendarService = calendar.NewService(deps.CalendarRepo, deps.Clock)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)

	deps.TodoRepo = todo.NewBlobRepository(store)
	deps.TodoService = todo.NewService(deps.TodoRepo, deps.Bus, deps.Clock)
	deps.TodoHandler = todo.NewHandler(deps.TodoService)

	deps.FinanceRepo = finance.NewBlobRepository(store)
	deps.FinanceService = finance.NewService(deps.FinanceRepo, deps.Bus, deps.Clock)
	deps.FinanceHandler = finance.NewHandler(deps.FinanceService)

	deps.NoteRepo = note.NewBlobRepository(store)
	deps.NoteService = note.NewService(deps.NoteRepo, deps.Bus, deps.Clock)
	deps.NoteHandler = note.NewHandler(deps.NoteService)

	deps.Syncer = integration.NewSyncer(deps.CalendarService, deps.Clock)
	integration.Subscribe(deps.Bus, deps.Syncer)

	deps.GoogleAuth = google.NewAuth(store, cfg)
	deps.GoogleExporter = google.NewExporter(deps.GoogleAuth, deps.CalendarService, cfg)
	deps.GoogleHandler = google.NewHandler(deps.GoogleExporter)

	return deps
}
