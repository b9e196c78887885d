package orion

import (
	"log/slog"
	"runtime"
	"time"
)

type frame struct {
	Total time.Duration

	AcquireFrame time.Duration
	Update       time.Duration
	Render       time.Duration
}

// frameProfile records how long the phases of the last frames took.
type frameProfile struct {
	frameCount int
	frames     [60 * 10]frame

	timeStartFrame  time.Time
	timeStartUpdate time.Time
	timeStartRender time.Time
	timeEndFrame    time.Time

	mem runtime.MemStats

	now func() time.Time
}

func (d *frameProfile) clock() time.Time {
	if d.now != nil {
		return d.now()
	}

	return time.Now()
}

func (d *frameProfile) StartFrame() {
	now := d.clock()

	if !d.timeStartFrame.IsZero() && !d.timeEndFrame.IsZero() {
		d.frames[d.frameCount%len(d.frames)] = frame{
			Total:        now.Sub(d.timeStartFrame),
			AcquireFrame: d.timeStartUpdate.Sub(d.timeStartFrame),
			Update:       d.timeStartRender.Sub(d.timeStartUpdate),
			Render:       d.timeEndFrame.Sub(d.timeStartRender),
		}

		d.frameCount += 1
	}

	d.timeStartFrame = now
	d.timeEndFrame = time.Time{}
}

func (d *frameProfile) StartUpdate() {
	d.timeStartUpdate = d.clock()
}

func (d *frameProfile) StartRender() {
	d.timeStartRender = d.clock()
}

func (d *frameProfile) EndFrame() {
	d.timeEndFrame = d.clock()
}

// average returns the mean of all recorded frames
func (d *frameProfile) average() frame {
	var count time.Duration
	var sum frame

	for _, frame := range d.frames {
		if frame.Total > 0 {
			count += 1
			sum.Total += frame.Total
			sum.AcquireFrame += frame.AcquireFrame
			sum.Update += frame.Update
			sum.Render += frame.Render
		}
	}

	if count == 0 {
		return frame{}
	}

	return frame{
		Total:        sum.Total / count,
		AcquireFrame: sum.AcquireFrame / count,
		Update:       sum.Update / count,
		Render:       sum.Render / count,
	}
}

// LogValue reports average phase durations together with memory and gc statistics.
func (d *frameProfile) LogValue() slog.Value {
	runtime.ReadMemStats(&d.mem)

	lastCycle := (d.mem.NumGC + 255) % 256
	lastCycleDur := time.Duration(d.mem.PauseNs[lastCycle])

	avg := d.average()

	return slog.GroupValue(
		slog.Duration("total", avg.Total),
		slog.Duration("acquire", avg.AcquireFrame),
		slog.Duration("update", avg.Update),
		slog.Duration("render", avg.Render),
		slog.Uint64("heapObjects", d.mem.HeapObjects),
		slog.Uint64("heapInUse", d.mem.HeapInuse),
		slog.Uint64("gcCycles", uint64(d.mem.NumGC)),
		slog.Duration("gcPause", lastCycleDur),
	)
}
