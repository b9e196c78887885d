package glm

// Ortho builds a right handed orthographic projection that maps the box
// [left, right] x [bottom, top] x [-near, -far] to normalized device coordinates
// in [-1, 1] on every axis.
func Ortho[T float](left, right, bottom, top, near, far T) Mat4[T] {
	return Mat4[T]{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left),
		-(top + bottom) / (top - bottom),
		-(far + near) / (far - near),
		1,
	}
}
