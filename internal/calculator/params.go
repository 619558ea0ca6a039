package calculator

// Params enumerates every period the indicator set depends on. The EMA period
// set is fixed by the persisted row schema (ema_10 .. ema_200); it is spelled
// out here rather than hidden inside the computation.
type Params struct {
	EMAPeriods           []int
	RSIPeriod            int
	ATRPeriod            int
	SupertrendPeriod     int
	SupertrendMultiplier float64
	VolumeSurgePeriod    int
}

// DefaultParams returns the period set the stored history was produced with.
func DefaultParams() Params {
	return Params{
		EMAPeriods:           []int{10, 20, 50, 100, 200},
		RSIPeriod:            14,
		ATRPeriod:            14,
		SupertrendPeriod:     10,
		SupertrendMultiplier: 3.0,
		VolumeSurgePeriod:    20,
	}
}

// MaxPeriod returns the largest lookback in use, which sizes the warmup window.
func (p Params) MaxPeriod() int {
	max := p.RSIPeriod
	for _, n := range p.EMAPeriods {
		if n > max {
			max = n
		}
	}
	for _, n := range []int{p.ATRPeriod, p.SupertrendPeriod, p.VolumeSurgePeriod} {
		if n > max {
			max = n
		}
	}
	return max
}
