package orion

import (
	"errors"
	"testing"

	"github.com/oliverbestmann/walker/glimpse"
	"github.com/stretchr/testify/require"
)

type fakeStage struct {
	initErr  error
	frameErr error

	inits    int
	frames   int
	releases int
	sizes    [][2]uint32

	// keys held during the last frame
	right, left bool
}

func (s *fakeStage) Init() error {
	s.inits++
	return s.initErr
}

func (s *fakeStage) Resize(width, height uint32) {
	s.sizes = append(s.sizes, [2]uint32{width, height})
}

func (s *fakeStage) Frame(input *glimpse.InputState) error {
	s.frames++
	s.right = input.IsPressed(glimpse.KeyArrowRight)
	s.left = input.IsPressed(glimpse.KeyArrowLeft)
	return s.frameErr
}

func (s *fakeStage) Release() {
	s.releases++
}

func readyApp(t *testing.T) (*App, *fakeStage) {
	stage := &fakeStage{}
	app := NewApp(stage)

	require.NoError(t, app.Handle(glimpse.InitEvent{}))
	require.Equal(t, StateReady, app.State())

	return app, stage
}

func TestAppStartsUninitialized(t *testing.T) {
	stage := &fakeStage{}
	app := NewApp(stage)

	require.Equal(t, StateUninitialized, app.State())

	// nothing but init is handled before initialization
	require.NoError(t, app.Handle(glimpse.RedrawEvent{}))
	require.NoError(t, app.Handle(glimpse.ResizeEvent{Width: 10, Height: 10}))
	require.NoError(t, app.Handle(glimpse.KeyEvent{Key: glimpse.KeyArrowRight, Pressed: true}))

	require.Equal(t, StateUninitialized, app.State())
	require.Zero(t, stage.inits)
	require.Zero(t, stage.frames)
	require.Empty(t, stage.sizes)
	require.False(t, app.Input().IsPressed(glimpse.KeyArrowRight))
}

func TestAppInitFailure(t *testing.T) {
	initErr := errors.New("no adapter")
	stage := &fakeStage{initErr: initErr}
	app := NewApp(stage)

	err := app.Handle(glimpse.InitEvent{})
	require.ErrorIs(t, err, initErr)
	require.Equal(t, StateUninitialized, app.State())
}

func TestAppRedrawRendersFrame(t *testing.T) {
	app, stage := readyApp(t)

	require.NoError(t, app.Handle(glimpse.RedrawEvent{}))
	require.NoError(t, app.Handle(glimpse.RedrawEvent{}))
	require.Equal(t, 2, stage.frames)
}

func TestAppFrameErrorIsReturned(t *testing.T) {
	app, stage := readyApp(t)

	stage.frameErr = errors.New("device lost")
	require.ErrorIs(t, app.Handle(glimpse.RedrawEvent{}), stage.frameErr)
}

func TestAppResize(t *testing.T) {
	app, stage := readyApp(t)

	require.NoError(t, app.Handle(glimpse.ResizeEvent{Width: 1024, Height: 768}))
	require.NoError(t, app.Handle(glimpse.ResizeEvent{Width: 0, Height: 0}))

	require.Equal(t, [][2]uint32{{1024, 768}, {0, 0}}, stage.sizes)
}

func TestAppKeyEventsUpdateInput(t *testing.T) {
	app, stage := readyApp(t)

	require.NoError(t, app.Handle(glimpse.KeyEvent{Key: glimpse.KeyArrowRight, Pressed: true}))
	require.NoError(t, app.Handle(glimpse.RedrawEvent{}))
	require.True(t, stage.right)
	require.False(t, stage.left)

	// repeats do not change the state
	require.NoError(t, app.Handle(glimpse.KeyEvent{Key: glimpse.KeyArrowRight, Pressed: false, Repeat: true}))
	require.True(t, app.Input().IsPressed(glimpse.KeyArrowRight))

	require.NoError(t, app.Handle(glimpse.KeyEvent{Key: glimpse.KeyArrowRight, Pressed: false}))
	require.NoError(t, app.Handle(glimpse.RedrawEvent{}))
	require.False(t, stage.right)
}

func TestAppEscapeShutsDown(t *testing.T) {
	app, stage := readyApp(t)

	// releasing escape does nothing
	require.NoError(t, app.Handle(glimpse.KeyEvent{Key: glimpse.KeyEscape, Pressed: false}))
	require.Equal(t, StateReady, app.State())

	require.NoError(t, app.Handle(glimpse.KeyEvent{Key: glimpse.KeyEscape, Pressed: true}))
	require.Equal(t, StateShuttingDown, app.State())
	require.Equal(t, 1, stage.releases)
	require.False(t, app.Input().IsPressed(glimpse.KeyEscape))
}

func TestAppCloseShutsDown(t *testing.T) {
	app, stage := readyApp(t)

	require.NoError(t, app.Handle(glimpse.CloseEvent{}))
	require.Equal(t, StateShuttingDown, app.State())

	// events after shutdown are ignored
	require.NoError(t, app.Handle(glimpse.RedrawEvent{}))
	require.NoError(t, app.Handle(glimpse.ResizeEvent{Width: 5, Height: 5}))
	require.Zero(t, stage.frames)
	require.Empty(t, stage.sizes)

	// shutdown is idempotent
	app.Shutdown()
	require.Equal(t, 1, stage.releases)
}

func TestAppCloseBeforeInit(t *testing.T) {
	stage := &fakeStage{}
	app := NewApp(stage)

	require.NoError(t, app.Handle(glimpse.CloseEvent{}))
	require.Equal(t, StateShuttingDown, app.State())
	require.Zero(t, stage.inits)
	require.Equal(t, 1, stage.releases)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "Uninitialized", StateUninitialized.String())
	require.Equal(t, "Ready", StateReady.String())
	require.Equal(t, "ShuttingDown", StateShuttingDown.String())
}
