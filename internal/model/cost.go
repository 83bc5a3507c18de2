package model

// TotalCost computes the total realized trading cost of schedule a against
// schedule b under a linear temporary + permanent price-impact model.
//
// At each step t the acting player pays:
//
//	(a[t] + b[t]) * a[t]              temporary impact of this step's flow
//	kappa * (A[t] + B[t]) * a[t]      permanent impact of prior trading
//
// where A[t] and B[t] are the positions held strictly before step t
// (0 at t=0). Trajectories shorter than each other are not reconciled here;
// callers are expected to pass equal-length schedules.
func TotalCost(a, b Trajectory, kappa float64) float64 {
	cumA := a.CumulativeBefore()
	cumB := b.CumulativeBefore()

	total := 0.0
	for t := range a {
		bt := 0.0
		cb := 0.0
		if t < len(b) {
			bt = b[t]
			cb = cumB[t]
		}
		total += (a[t]+bt)*a[t] + kappa*(cumA[t]+cb)*a[t]
	}
	return total
}
