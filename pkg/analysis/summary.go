package analysis

// Summary is the derived, read-only view over the final operator stats.
// Histogram maps a successful-call count to the number of operators that
// finished the run with that count; every operator lands in exactly one
// bucket.
type Summary struct {
	Histogram          map[uint]uint `json:"histogram"`
	Operators          uint          `json:"operators"`
	TotalValidators    uint          `json:"total_validators"`
	MaxValidators      uint          `json:"max_validators"`
	ConcentrationRatio float64       `json:"concentration_ratio"`
}

// Empty reports whether no relevant transactions were seen. An empty summary
// carries no concentration ratio.
func (s *Summary) Empty() bool {
	return len(s.Histogram) == 0
}

func newSummary(stats map[string]*OperatorStats) *Summary {
	summary := &Summary{Histogram: make(map[uint]uint)}
	for _, operatorStats := range stats {
		summary.Histogram[operatorStats.Successful]++
		summary.Operators++
	}

	for count, operators := range summary.Histogram {
		summary.TotalValidators += count * operators
		if count > summary.MaxValidators {
			summary.MaxValidators = count
		}
	}

	if summary.TotalValidators > 0 {
		summary.ConcentrationRatio = float64(summary.MaxValidators) / float64(summary.TotalValidators)
	}
	return summary
}
