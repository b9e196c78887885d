package pulse

import (
	"github.com/oliverbestmann/walker/glm"
)

type Rectangle2f struct {
	Min glm.Vec2f
	Max glm.Vec2f
}

func RectangleFromPoints(a, b glm.Vec2f) Rectangle2f {
	return Rectangle2f{
		Min: glm.Vec2f{
			min(a[0], b[0]),
			min(a[1], b[1]),
		},
		Max: glm.Vec2f{
			max(a[0], b[0]),
			max(a[1], b[1]),
		},
	}
}

// Contains reports whether the point lies within the closed rectangle.
func (r Rectangle2f) Contains(point glm.Vec2f) bool {
	return point[0] >= r.Min[0] && point[0] <= r.Max[0] &&
		point[1] >= r.Min[1] && point[1] <= r.Max[1]
}

func (r Rectangle2f) Center() glm.Vec2f {
	return glm.Vec2f{
		(r.Min[0] + r.Max[0]) / 2,
		(r.Min[1] + r.Max[1]) / 2,
	}
}
