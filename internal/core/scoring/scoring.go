package scoring

import "math"

// Tier labels shared by the credibility and performance percentages.
const (
	BandVeryHigh = "Muy Alta"
	BandHigh     = "Alta"
	BandMedium   = "Media"
	BandLow      = "Baja"
	BandVeryLow  = "Muy Baja"
)

const maxSubScore = 5.0

// Fixed projection weights: engagement, viral potential, emotional impact,
// interest duration.
const (
	weightEngagement = 0.25
	weightViral      = 0.20
	weightEmotional  = 0.30
	weightDuration   = 0.25
)

// CredibilityFactorCount is the number of independent credibility sub-scores.
const CredibilityFactorCount = 11

// Band maps a 0-100 percentage to its five-tier label.
func Band(percent int) string {
	switch {
	case percent >= 80:
		return BandVeryHigh
	case percent >= 60:
		return BandHigh
	case percent >= 40:
		return BandMedium
	case percent >= 20:
		return BandLow
	default:
		return BandVeryLow
	}
}

// CredibilityPercent aggregates the eleven 0-5 sub-scores into a percentage
// of the maximum attainable (5 x 11). Absent sub-scores count as 0; inputs
// are clamped before summing. When the factor block is present this aggregate
// always wins over the single nivel_credibilidad input.
func CredibilityPercent(factors []int) int {
	sum := 0.0
	for _, f := range factors {
		v := float64(f)
		if v < 0 {
			v = 0
		}
		if v > maxSubScore {
			v = maxSubScore
		}
		sum += v
	}
	return int(math.Round(sum / (maxSubScore * CredibilityFactorCount) * 100))
}

// PerformancePercent combines the four projection sub-scores by fixed weights
// into a percentage. A projection of {engagement: 5} alone yields exactly 25.
func PerformancePercent(engagement, viral, emotional, duration int) int {
	clamp := func(v int) float64 {
		f := float64(v)
		if f < 0 {
			return 0
		}
		if f > maxSubScore {
			return maxSubScore
		}
		return f
	}
	weighted := clamp(engagement)*weightEngagement +
		clamp(viral)*weightViral +
		clamp(emotional)*weightEmotional +
		clamp(duration)*weightDuration
	return int(math.Round(weighted / maxSubScore * 100))
}

// CredibilityLevel converts the aggregate percentage back onto the 0-5 scale
// stored on the story row.
func CredibilityLevel(percent int) float64 {
	return math.Round(float64(percent)/100*maxSubScore*10) / 10
}
