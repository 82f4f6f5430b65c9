package lint

import (
	"fmt"
	"sort"
	"sync"
)

// registry holds all known rules keyed by rule ID.
// Rule family packages register themselves from init().
var registry = struct {
	mu    sync.RWMutex
	rules map[string]Rule
}{rules: make(map[string]Rule)}

// Register adds a rule to the global registry.
// It panics on duplicate IDs: that is a programming error in a rule package.
func Register(r Rule) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.rules[r.ID()]; exists {
		panic(fmt.Sprintf("lint: duplicate rule ID %q", r.ID()))
	}
	registry.rules[r.ID()] = r
}

// Rules returns all registered rules sorted by ID.
func Rules() []Rule {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := make([]Rule, 0, len(registry.rules))
	for _, r := range registry.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Lookup returns a registered rule by ID.
func Lookup(id string) (Rule, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	r, ok := registry.rules[id]
	return r, ok
}
