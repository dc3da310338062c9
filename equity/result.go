package equity

import "math"

// Result holds the raw counts of a Monte Carlo run.
type Result struct {
	Wins   int
	Ties   int
	Trials int
}

// add folds one showdown outcome into the counts.
func (r *Result) add(o Outcome) {
	switch o {
	case Win:
		r.Wins++
	case Tie:
		r.Ties++
	}
	r.Trials++
}

func (r *Result) merge(other Result) {
	r.Wins += other.Wins
	r.Ties += other.Ties
	r.Trials += other.Trials
}

// Losses returns the number of lost trials.
func (r Result) Losses() int {
	return r.Trials - r.Wins - r.Ties
}

// Equity returns the overall equity (0.0 to 1.0)
// Wins count as 1.0, ties count as 0.5
func (r Result) Equity() float64 {
	if r.Trials == 0 {
		return 0.0
	}
	return (float64(r.Wins) + float64(r.Ties)*0.5) / float64(r.Trials)
}

// WinRate returns the share of trials won outright.
func (r Result) WinRate() float64 {
	if r.Trials == 0 {
		return 0.0
	}
	return float64(r.Wins) / float64(r.Trials)
}

// TieRate returns the share of trials split.
func (r Result) TieRate() float64 {
	if r.Trials == 0 {
		return 0.0
	}
	return float64(r.Ties) / float64(r.Trials)
}

// LossRate returns the share of trials lost.
func (r Result) LossRate() float64 {
	if r.Trials == 0 {
		return 0.0
	}
	return float64(r.Losses()) / float64(r.Trials)
}

// ConfidenceInterval returns the 95% confidence interval for equity
func (r Result) ConfidenceInterval() (lower, upper float64) {
	if r.Trials == 0 {
		return 0.0, 0.0
	}
	equity := r.Equity()

	// Standard error for binomial proportion
	se := math.Sqrt((equity * (1.0 - equity)) / float64(r.Trials))
	margin := 1.96 * se

	return math.Max(0.0, equity-margin), math.Min(1.0, equity+margin)
}
