package orion

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestFrameProfile(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	profile := frameProfile{now: clock.now}

	for range 2 {
		profile.StartFrame()
		clock.advance(4 * time.Millisecond)
		profile.StartUpdate()
		clock.advance(1 * time.Millisecond)
		profile.StartRender()
		clock.advance(3 * time.Millisecond)
		profile.EndFrame()
		clock.advance(2 * time.Millisecond)
	}

	// the second frame is recorded on the next start
	profile.StartFrame()

	require.Equal(t, 2, profile.frameCount)

	avg := profile.average()
	require.Equal(t, 10*time.Millisecond, avg.Total)
	require.Equal(t, 4*time.Millisecond, avg.AcquireFrame)
	require.Equal(t, 1*time.Millisecond, avg.Update)
	require.Equal(t, 3*time.Millisecond, avg.Render)
}

func TestFrameProfileSkipsIncompleteFrames(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	profile := frameProfile{now: clock.now}

	// a frame that failed before EndFrame
	profile.StartFrame()
	clock.advance(time.Millisecond)
	profile.StartFrame()

	require.Zero(t, profile.frameCount)
	require.Equal(t, frame{}, profile.average())
}

func TestFrameProfileLogValue(t *testing.T) {
	var profile frameProfile

	value := profile.LogValue()
	require.Equal(t, slog.KindGroup, value.Kind())

	keys := map[string]bool{}
	for _, attr := range value.Group() {
		keys[attr.Key] = true
	}

	require.True(t, keys["total"])
	require.True(t, keys["render"])
	require.True(t, keys["gcCycles"])
}
