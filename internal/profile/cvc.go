package profile

import "sync"

// CVCSlot tracks one attribute under a continuous value change, such as
// Level Control's current level during a Move to Level transition.
// Times are in tenths of a second.
type CVCSlot struct {
	ClusterID      uint16
	AttrID         uint16
	Start          int64
	Target         int64
	TransitionTime uint16
	Elapsed        uint16
	Active         bool
}

// Value returns the interpolated value at the current elapsed time.
func (s *CVCSlot) Value() int64 {
	if s.TransitionTime == 0 || s.Elapsed >= s.TransitionTime {
		return s.Target
	}
	return s.Start + (s.Target-s.Start)*int64(s.Elapsed)/int64(s.TransitionTime)
}

// Done reports whether the transition reached its target.
func (s *CVCSlot) Done() bool {
	return s.Elapsed >= s.TransitionTime
}

// CVCUpdate is the outcome of advancing one transition.
type CVCUpdate struct {
	ClusterID uint16
	AttrID    uint16
	Value     int64
	Done      bool
}

// CVCContext is a fixed-capacity table of transitions. Like the reporting
// context the table is caller-owned, and a nil *CVCContext has capacity zero.
type CVCContext struct {
	mu    sync.Mutex
	table []CVCSlot
}

// NewCVCContext wraps a caller-owned table; an empty table yields (0, nil).
func NewCVCContext(table []CVCSlot) *CVCContext {
	if len(table) == 0 {
		return &CVCContext{}
	}
	return &CVCContext{table: table}
}

// Count returns the capacity of the table.
func (c *CVCContext) Count() int {
	if c == nil {
		return 0
	}
	return len(c.table)
}

// Table returns a copy of the slot table, or nil for a zero-capacity context.
func (c *CVCContext) Table() []CVCSlot {
	if c == nil || c.table == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CVCSlot, len(c.table))
	copy(out, c.table)
	return out
}

// Begin starts a transition of the attribute from start to target. A running
// transition on the same attribute is replaced.
func (c *CVCContext) Begin(clusterID, attrID uint16, start, target int64, transitionTime uint16) error {
	if c == nil {
		return ErrContextFull
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	free := -1
	for i := range c.table {
		s := &c.table[i]
		if s.Active && s.ClusterID == clusterID && s.AttrID == attrID {
			free = i
			break
		}
		if free < 0 && !s.Active {
			free = i
		}
	}
	if free < 0 {
		return ErrContextFull
	}
	c.table[free] = CVCSlot{
		ClusterID:      clusterID,
		AttrID:         attrID,
		Start:          start,
		Target:         target,
		TransitionTime: transitionTime,
		Active:         true,
	}
	return nil
}

// Advance moves every active transition forward by delta tenths of a second.
// Finished transitions are released.
func (c *CVCContext) Advance(delta uint16) []CVCUpdate {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var updates []CVCUpdate
	for i := range c.table {
		s := &c.table[i]
		if !s.Active {
			continue
		}
		if int(s.Elapsed)+int(delta) >= int(s.TransitionTime) {
			s.Elapsed = s.TransitionTime
		} else {
			s.Elapsed += delta
		}
		u := CVCUpdate{ClusterID: s.ClusterID, AttrID: s.AttrID, Value: s.Value(), Done: s.Done()}
		if u.Done {
			*s = CVCSlot{}
		}
		updates = append(updates, u)
	}
	return updates
}

// Cancel stops the transition of the attribute.
func (c *CVCContext) Cancel(clusterID, attrID uint16) error {
	if c == nil {
		return ErrSlotNotFound
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.table {
		s := &c.table[i]
		if s.Active && s.ClusterID == clusterID && s.AttrID == attrID {
			*s = CVCSlot{}
			return nil
		}
	}
	return ErrSlotNotFound
}

// Active returns copies of the running transitions.
func (c *CVCContext) Active() []CVCSlot {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []CVCSlot
	for _, s := range c.table {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}
