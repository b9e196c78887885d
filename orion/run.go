package orion

import (
	"fmt"

	"github.com/oliverbestmann/walker/config"
	"github.com/oliverbestmann/walker/glimpse"
	"github.com/oliverbestmann/walker/pulse"
)

// Run opens the window and runs the walker until the window is
// closed or escape is pressed.
func Run(cfg *config.Config) error {
	// create a new window
	win, err := glimpse.NewWindow(glimpse.WindowOptions{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		CPUProfile: cfg.Diagnostics.CPUProfile,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	// initialize the webgpu device
	ctx, err := pulse.New(pulse.ContextOptions{Label: cfg.Window.Title})
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	defer ctx.Release()

	app := NewApp(NewWalker(ctx, win, cfg))
	defer app.Shutdown()

	return loop(app, win)
}

// loop feeds window events into the app until it shuts down.
func loop(app *App, win glimpse.Window) error {
	for app.State() != StateShuttingDown {
		for _, event := range win.PollEvents() {
			if err := app.Handle(event); err != nil {
				return err
			}
		}

		if win.ShouldClose() {
			app.Shutdown()
		}
	}

	return nil
}
