// Package viz hosts the curve in a terminal.
//
// [Canvas] is a Braille dot grid and [BrailleSurface] adapts it to the
// frame renderer, so the same draw pass that feeds the desktop window
// feeds the terminal. [Model] is the Bubble Tea program around a session.
//
// # Key Bindings
//
//	Mouse   - Drag P1 / P2
//	Space   - Pause/Resume
//	R / N   - Reset / randomize the curve
//	P T G   - Particles, trail, glow
//	M O E   - Math overlay, oscillation, environment forces
//	Tab     - Cycle parameters, Up/Down to tune
//	C       - Cycle color themes
//	S       - Save a PNG snapshot
//	Shift+G - Toggle GIF recording
//	?       - Show help overlay
package viz
