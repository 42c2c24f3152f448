package physics

import "github.com/san-kum/bezdyn/internal/sim"

// Energy sums ½|v|² + ½k|p - target|² over the free points.
func Energy(st *sim.State, stiffness float64) float64 {
	energy := 0.0
	for _, i := range sim.FreeIndices {
		pt := st.Points[i]
		kinetic := 0.5 * pt.Vel.Hypot2()
		potential := 0.5 * stiffness * pt.Pos.Sub(pt.Target).Hypot2()
		energy += kinetic + potential
	}
	return energy
}
