package formulas

// Trend classifies the direction of a financial series
type Trend string

const (
	TrendGrowing   Trend = "Growing"
	TrendStable    Trend = "Stable"
	TrendDeclining Trend = "Declining"
)

// DetectTrend compares the average of the first third of a series against
// the last third. Fewer than 3 valid points reads as Stable.
func DetectTrend(values []*float64) Trend {
	valid := Compact(values)
	if len(valid) < 3 {
		return TrendStable
	}

	n := len(valid)
	third := n / 3
	if third == 0 {
		third = 1
	}
	first := Mean(valid[:third])
	last := Mean(valid[n-third:])

	if first == 0 {
		return TrendStable
	}

	changePct := (last - first) / abs(first) * 100
	switch {
	case changePct > 10:
		return TrendGrowing
	case changePct < -10:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// IsConsistent reports whether at least 60% of the valid entries meet the
// threshold. Fewer than 2 valid points never counts as consistent.
func IsConsistent(values []*float64, threshold float64) bool {
	valid := Compact(values)
	if len(valid) < 2 {
		return false
	}
	passing := 0
	for _, v := range valid {
		if v >= threshold {
			passing++
		}
	}
	return float64(passing) >= float64(len(valid))*0.6
}

// PositiveFraction returns the percentage of valid entries that are > 0
func PositiveFraction(values []*float64) float64 {
	valid := Compact(values)
	if len(valid) == 0 {
		return 0
	}
	positive := 0
	for _, v := range valid {
		if v > 0 {
			positive++
		}
	}
	return float64(positive) / float64(len(valid)) * 100
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
