package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	focusinadapter "studyhub/internal/modules/focus/adapter/in"
	focusoutadapter "studyhub/internal/modules/focus/adapter/out"
	focusservice "studyhub/internal/modules/focus/service"
	focususecase "studyhub/internal/modules/focus/usecase"
	statsinadapter "studyhub/internal/modules/stats/adapter/in"
	statsoutadapter "studyhub/internal/modules/stats/adapter/out"
	statsout "studyhub/internal/modules/stats/port/out"
	statsservice "studyhub/internal/modules/stats/service"
	statsusecase "studyhub/internal/modules/stats/usecase"
	"studyhub/internal/platform/clock"
	"studyhub/internal/platform/config"
	"studyhub/internal/platform/id"
	"studyhub/internal/platform/tx"
	uiapp "studyhub/internal/ui/app"
)

type App struct {
	StatsCLI statsinadapter.CLIHandler
	FocusCLI focusinadapter.CLIHandler

	closers []io.Closer
}

// Close releases backend handles. It is safe to call more than once.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func New(cfg config.Config, logger zerolog.Logger) (*App, error) {
	// Calendar days follow the user's wall clock.
	clk := clock.LocalClock{}
	ids := id.UUID{}

	kv, err := newKeyValueStore(cfg)
	if err != nil {
		return nil, err
	}
	tracker := statsservice.NewTracker(statsservice.NewStatsStore(kv, logger), clk, logger)
	tracker.Open(context.Background())
	statsUC := statsusecase.NewInteractor(tracker, clk, statsoutadapter.NewMarkdownNoteWriter(cfg.WorkspacePath))

	focusUC := focususecase.NewInteractor(
		focusservice.NewFocusService(clk, ids, focusoutadapter.NewNoteFocusLog(cfg.WorkspacePath)),
		statsUC,
		focusoutadapter.NewFileActiveFocusStore(cfg.StateDir, clk),
		&tx.SerialManager{},
	)

	logger.Debug().Str("workspace", cfg.WorkspacePath).Str("backend", string(cfg.Backend)).Msg("studyhub ready")
	app := &App{
		StatsCLI: statsinadapter.NewCLIHandler(statsUC),
		FocusCLI: focusinadapter.NewCLIHandler(focusUC),
	}
	if closer, ok := kv.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}
	return app, nil
}

func newKeyValueStore(cfg config.Config) (statsout.KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		kv, err := statsoutadapter.NewSQLiteKeyValueStore(cfg.DBPath, clock.SystemClock{})
		if err != nil {
			return nil, fmt.Errorf("new sqlite state store: %w", err)
		}
		return kv, nil
	default:
		return statsoutadapter.NewFileKeyValueStore(cfg.StateDir), nil
	}
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.FocusCLI, app.StatsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
