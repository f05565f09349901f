package social

import (
	"sort"
	"strings"

	"hireboard/domain/repository"
)

// Registry resolves a case-insensitive platform key to its adapter. Unknown
// keys are rejected here, before any adapter runs.
type Registry struct {
	publishers map[string]repository.IPublisher
}

func NewRegistry(publishers ...repository.IPublisher) *Registry {
	m := make(map[string]repository.IPublisher, len(publishers))
	for _, p := range publishers {
		m[strings.ToLower(p.Platform())] = p
	}
	return &Registry{publishers: m}
}

func (r *Registry) Lookup(platform string) (repository.IPublisher, bool) {
	p, ok := r.publishers[strings.ToLower(platform)]
	return p, ok
}

func (r *Registry) Platforms() []string {
	keys := make([]string, 0, len(r.publishers))
	for k := range r.publishers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
