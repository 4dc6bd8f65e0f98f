// internal/llm/client.go
package llm

import (
	"context"
	"sort"
	"time"
)

// Client invokes one model backend with a prompt and returns its raw text
// reply. Implementations must translate every failure into one of the
// StandardError model-failure codes so the pipeline can classify it.
type Client interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Tier couples a Client with its rank in the fallback order. Higher rank
// means higher quality; tiers are attempted in descending rank, once each.
type Tier struct {
	Name        string
	Model       string
	Rank        int
	Timeout     time.Duration
	CooldownTTL time.Duration
	Client      Client
}

// SortTiers orders tiers best-first. The slice is sorted in place and
// returned for convenience.
func SortTiers(tiers []Tier) []Tier {
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].Rank > tiers[j].Rank
	})
	return tiers
}
