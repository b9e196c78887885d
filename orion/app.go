package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/walker/glimpse"
)

// App is the application state machine. It moves from Uninitialized
// to Ready on the init event and from Ready to ShuttingDown when the
// window is closed or Escape is pressed.
type App struct {
	state State
	stage Stage
	input glimpse.InputState
}

func NewApp(stage Stage) *App {
	return &App{stage: stage}
}

func (a *App) State() State {
	return a.state
}

func (a *App) Input() *glimpse.InputState {
	return &a.input
}

// Handle processes one window event.
func (a *App) Handle(event glimpse.Event) error {
	switch a.state {
	case StateUninitialized:
		return a.handleUninitialized(event)

	case StateReady:
		return a.handleReady(event)

	default:
		return nil
	}
}

func (a *App) handleUninitialized(event glimpse.Event) error {
	switch event.(type) {
	case glimpse.InitEvent:
		if err := a.stage.Init(); err != nil {
			return fmt.Errorf("initialize stage: %w", err)
		}

		a.transition(StateReady)

	case glimpse.CloseEvent:
		a.Shutdown()

	default:
		slog.Debug("Ignore event before initialization", slog.String("event", event.String()))
	}

	return nil
}

func (a *App) handleReady(event glimpse.Event) error {
	switch event := event.(type) {
	case glimpse.RedrawEvent:
		if err := a.stage.Frame(&a.input); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}

	case glimpse.ResizeEvent:
		a.stage.Resize(event.Width, event.Height)

	case glimpse.KeyEvent:
		if event.Key == glimpse.KeyEscape && event.Pressed {
			a.Shutdown()
			return nil
		}

		a.input.Apply(event)

	case glimpse.CloseEvent:
		a.Shutdown()
	}

	return nil
}

// Shutdown releases the stage and moves to StateShuttingDown.
// Calling it more than once has no effect.
func (a *App) Shutdown() {
	if a.state == StateShuttingDown {
		return
	}

	a.transition(StateShuttingDown)
	a.stage.Release()
}

func (a *App) transition(state State) {
	slog.Info("App state changed",
		slog.String("from", a.state.String()),
		slog.String("to", state.String()),
	)

	a.state = state
}
