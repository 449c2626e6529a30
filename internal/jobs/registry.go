// internal/jobs/registry.go
package jobs

import (
	"sort"
	"sync"
)

var (
	regMu    sync.RWMutex
	registry = map[string]Spec{}
)

func Register(s Spec) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[s.Name] = s
}

func Get(name string) (Spec, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	s, ok := registry[name]
	return s, ok
}

// Names: posortowane nazwy zarejestrowanych jobów.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
