package zcl

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Registry is the cluster catalogue: the attribute and command definitions
// every cluster instance is built from. Definitions are keyed by cluster ID;
// registering an ID a second time overlays the new attributes on the old.
type Registry struct {
	mu       sync.RWMutex
	clusters map[uint16]*ClusterDef
	logger   *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		clusters: make(map[uint16]*ClusterDef),
		logger:   logger.With("component", "zcl"),
	}
}

// Register adds a cluster definition, or merges it into the definition
// already held for the same ID.
func (r *Registry) Register(c ClusterDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := fmt.Sprintf("0x%04X", c.ID)
	existing, ok := r.clusters[c.ID]
	if !ok {
		r.clusters[c.ID] = c.DeepCopy()
		r.logger.Debug("cluster registered", "id", id, "name", c.Name, "attributes", len(c.Attributes))
		return
	}
	existing.Merge(&c)
	r.logger.Debug("cluster merged", "id", id, "name", existing.Name, "attributes", len(existing.Attributes))
}

// Has reports whether id is registered.
func (r *Registry) Has(id uint16) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clusters[id]
	return ok
}

// Len returns the number of registered clusters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clusters)
}

// Get returns a copy of the definition of id, or nil.
func (r *Registry) Get(id uint16) *ClusterDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := r.clusters[id]
	if c == nil {
		return nil
	}
	return c.DeepCopy()
}

// Attribute returns the definition of one attribute of a registered cluster.
func (r *Registry) Attribute(clusterID, attrID uint16) (AttributeDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.clusters[clusterID]; ok {
		if a := c.FindAttribute(attrID); a != nil {
			return *a, true
		}
	}
	return AttributeDef{}, false
}

// All returns copies of all definitions ordered by cluster ID.
func (r *Registry) All() []ClusterDef {
	r.mu.RLock()
	ids := make([]uint16, 0, len(r.clusters))
	for id := range r.clusters {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)

	out := make([]ClusterDef, 0, len(ids))
	for _, id := range ids {
		if c := r.Get(id); c != nil {
			out = append(out, *c)
		}
	}
	return out
}
