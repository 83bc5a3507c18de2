package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Trajectory is an ordered trading schedule: the quantity traded by one
// player at each time step. Positive values buy, negative values sell.
type Trajectory []float64

// Sum returns the total volume traded over the whole schedule.
func (tr Trajectory) Sum() float64 {
	total := 0.0
	for _, q := range tr {
		total += q
	}
	return total
}

// Cumulative returns the running position including the current step:
// out[t] = tr[0] + ... + tr[t].
func (tr Trajectory) Cumulative() []float64 {
	out := make([]float64, len(tr))
	run := 0.0
	for t, q := range tr {
		run += q
		out[t] = run
	}
	return out
}

// CumulativeBefore returns the position held strictly before each step:
// out[0] = 0, out[t] = tr[0] + ... + tr[t-1].
func (tr Trajectory) CumulativeBefore() []float64 {
	out := make([]float64, len(tr))
	run := 0.0
	for t, q := range tr {
		out[t] = run
		run += q
	}
	return out
}

func (tr Trajectory) Clone() Trajectory {
	out := make(Trajectory, len(tr))
	copy(out, tr)
	return out
}

// keyPrecision is the number of decimals kept when grouping trajectories by
// value. Schedules produced by the optimizer are integral, but averaged
// opponent schedules are not, and raw float64 keys would split buckets on
// representation noise.
const keyPrecision = 9

// Key returns a canonical string form usable as a map key when building
// empirical action distributions.
func (tr Trajectory) Key() string {
	parts := make([]string, len(tr))
	for i, q := range tr {
		parts[i] = strconv.FormatFloat(round(q, keyPrecision), 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (tr Trajectory) String() string {
	parts := make([]string, len(tr))
	for i, q := range tr {
		parts[i] = strconv.FormatFloat(q, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ParseTrajectory parses a comma-separated list of quantities, e.g. "1,0,2.5".
func ParseTrajectory(s string) (Trajectory, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Trajectory{}, nil
	}
	parts := strings.Split(s, ",")
	out := make(Trajectory, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q at position %d", p, i)
		}
		out[i] = v
	}
	return out, nil
}

func round(x float64, decimals int) float64 {
	shift := 1.0
	for i := 0; i < decimals; i++ {
		shift *= 10
	}
	return math.Round(x*shift) / shift
}
