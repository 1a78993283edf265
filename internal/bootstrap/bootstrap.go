package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	archiveinadapter "shelflife/internal/modules/archive/adapter/in"
	archiveoutadapter "shelflife/internal/modules/archive/adapter/out"
	archiveservice "shelflife/internal/modules/archive/service"
	archiveusecase "shelflife/internal/modules/archive/usecase"
	bookinadapter "shelflife/internal/modules/book/adapter/in"
	bookoutadapter "shelflife/internal/modules/book/adapter/out"
	bookservice "shelflife/internal/modules/book/service"
	bookusecase "shelflife/internal/modules/book/usecase"
	cataloginadapter "shelflife/internal/modules/catalog/adapter/in"
	catalogoutadapter "shelflife/internal/modules/catalog/adapter/out"
	catalogservice "shelflife/internal/modules/catalog/service"
	catalogusecase "shelflife/internal/modules/catalog/usecase"
	sessioninadapter "shelflife/internal/modules/session/adapter/in"
	sessionoutadapter "shelflife/internal/modules/session/adapter/out"
	sessionservice "shelflife/internal/modules/session/service"
	sessionusecase "shelflife/internal/modules/session/usecase"
	statsinadapter "shelflife/internal/modules/stats/adapter/in"
	statsoutadapter "shelflife/internal/modules/stats/adapter/out"
	statsservice "shelflife/internal/modules/stats/service"
	statsusecase "shelflife/internal/modules/stats/usecase"
	"shelflife/internal/platform/clock"
	"shelflife/internal/platform/config"
	"shelflife/internal/platform/id"
	"shelflife/internal/ui/dashboard"
)

type App struct {
	BookCLI    bookinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler
	CatalogCLI cataloginadapter.CLIHandler
	ArchiveCLI archiveinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	bookStore := bookoutadapter.NewNoteBookStore(cfg.LibraryPath)
	bookProjector, err := bookoutadapter.NewSQLiteBookProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new book projector: %w", err)
	}
	sessionStore := sessionoutadapter.NewNoteSessionStore(cfg.LibraryPath)
	activeStore := sessionoutadapter.NewFileActiveSessionStore(cfg.ActivePath)

	bookSvc := bookservice.NewBookService(clk, ids, bookStore, bookProjector)
	bookUC := bookusecase.NewInteractor(bookSvc, bookoutadapter.NewSessionGuardAdapter(activeStore))

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, sessionStore),
		bookUC,
		activeStore,
	)

	statsSvc := statsservice.NewStatsService(
		clk,
		statsoutadapter.NewSessionReaderAdapter(sessionStore),
		statsoutadapter.NewFileSettingsStore(cfg.SettingsPath),
	)
	statsUC := statsusecase.NewInteractor(statsSvc, statsoutadapter.NewBookReaderAdapter(bookStore))

	catalogUC := catalogusecase.NewInteractor(
		catalogservice.NewCatalogService(catalogoutadapter.NewOpenLibraryGateway()),
	)

	archiveSvc := archiveservice.NewArchiveService(
		clk,
		archiveoutadapter.NewLibrarySnapshotReader(bookStore, sessionStore),
		archiveoutadapter.NewLibraryReplaceWriter(cfg.LibraryPath, bookStore, sessionStore),
		archiveoutadapter.NewJSONCodec(),
	)
	archiveUC := archiveusecase.NewInteractor(archiveSvc, bookUC, activeStore)

	return &App{
		BookCLI:    bookinadapter.NewCLIHandler(bookUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
		CatalogCLI: cataloginadapter.NewCLIHandler(catalogUC),
		ArchiveCLI: archiveinadapter.NewCLIHandler(archiveUC),
	}, nil
}

func RunTUI(app *App) error {
	model := dashboard.NewModel(app.StatsCLI, app.SessionCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
