// Package motion defines the abstract motion sink consumed by toolpath
// generators. Implementations (gcode, recorders) receive an ordered,
// append-only stream of motion primitives and decide how to render or
// store them. The sink abstraction keeps the geometry core free of any
// text formatting.
package motion

// Sink receives motion primitives in emission order. Calls are
// side-effecting and order-sensitive; a sink must not reorder them.
type Sink interface {
	// Comment records an annotation that produces no motion.
	Comment(text string)

	// Retract raises the tool vertically to the traverse-safe height.
	// The sink owns the height; the toolpath only demands safety.
	Retract()

	// MoveXY performs a rapid 2D positioning move at traverse height.
	MoveXY(x, y float64)

	// Plunge performs a rapid vertical move down to z. Only safe when z
	// is known to be clear of material.
	Plunge(z float64)

	// Descend performs a feed-controlled vertical move down to z.
	Descend(z float64)

	// CutXY performs a linear cutting move to (x, y) at the current depth.
	CutXY(x, y float64)
}
