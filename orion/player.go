package orion

import (
	"log/slog"

	"github.com/oliverbestmann/walker/glimpse"
	"github.com/oliverbestmann/walker/glm"
	"github.com/oliverbestmann/walker/pulse"
)

// PlayerSpeed is the distance the player moves per frame, in units of its own width.
const PlayerSpeed = 0.07

var (
	PlayerPosition = glm.Vec2f{30, 30}
	PlayerSize     = glm.Vec2f{13, 8}
)

// movable is implemented by *pulse.Sprite
type movable interface {
	MoveBy(queue pulse.BufferWriter, delta glm.Vec2f) error
	Bounds() pulse.Rectangle2f
}

type player struct {
	sprite movable

	// center of the sprite is outside of the visible world
	offscreen bool
}

// Update moves the player horizontally while an arrow key is held.
func (p *player) Update(queue pulse.BufferWriter, input *glimpse.InputState) error {
	var moved bool

	if input.IsPressed(glimpse.KeyArrowRight) {
		if err := p.sprite.MoveBy(queue, glm.Vec2f{PlayerSpeed, 0}); err != nil {
			return err
		}

		moved = true
	}

	if input.IsPressed(glimpse.KeyArrowLeft) {
		if err := p.sprite.MoveBy(queue, glm.Vec2f{-PlayerSpeed, 0}); err != nil {
			return err
		}

		moved = true
	}

	if moved {
		p.checkVisible()
	}

	return nil
}

func (p *player) checkVisible() {
	bounds := p.sprite.Bounds()

	offscreen := !pulse.WorldBounds.Contains(bounds.Center())
	if offscreen == p.offscreen {
		return
	}

	p.offscreen = offscreen

	if offscreen {
		slog.Info("Player left the visible world", slog.Any("bounds", bounds))
	} else {
		slog.Info("Player is visible again", slog.Any("bounds", bounds))
	}
}
