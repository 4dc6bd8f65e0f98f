// internal/planner/sufficiency/config.go
package sufficiency

import "time"

type Config struct {
	// WindowSize is how many recent assistant questions are checked for
	// near-duplicates. With K questions in the window, a stuck dialogue is
	// forced to generation within K+1 turns.
	WindowSize int

	// SimilarityThreshold is the Jaccard token-overlap ratio above which two
	// questions count as the same question.
	SimilarityThreshold float64

	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		WindowSize:          3,
		SimilarityThreshold: 0.85,
		Timeout:             15 * time.Second,
	}
}
