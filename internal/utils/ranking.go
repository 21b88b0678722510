package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity     float64 // time decay exponent
	ScaleFactor float64
}

var DefaultRankConfig = RankConfig{
	Gravity:     1.5,
	ScaleFactor: 100.0,
}

// TrendingScore ranks a poll by log-smoothed vote count decayed by age in
// hours. A poll with no votes scores 0.
func TrendingScore(createdAt time.Time, votes int64, now time.Time) float64 {
	hours := now.Sub(createdAt).Hours()
	if hours < 0 {
		hours = 0
	}
	if votes < 0 {
		votes = 0
	}

	numerator := math.Log10(float64(votes)+1) * DefaultRankConfig.ScaleFactor
	decay := math.Pow(hours+2, DefaultRankConfig.Gravity)
	return numerator / decay
}
