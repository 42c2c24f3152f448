// Package sim defines the data model shared by the integrator, the
// interaction controller and the renderers:
//
//   - [ControlPoint]: one of the four Bézier control points
//   - [State]: the four points plus the oscillation clock
//   - [Input]: pointer position, press state and drag target
//   - [Params]: user-tunable physics parameters
//
// State, Input and Params are owned by a single session loop and are not
// safe for concurrent use.
package sim
