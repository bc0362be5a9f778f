package profile

import (
	"bytes"
	"math"
	"sync"

	"zigbee-ha-profile/internal/zcl"
)

// ReportFlags describe the state of a reporting slot.
type ReportFlags uint8

const (
	ReportSlotUsed ReportFlags = 1 << iota
	// ReportSlotPending is set when the value moved past the reportable
	// change since the last report.
	ReportSlotPending
)

// MaxIntervalDisable in a reporting configuration turns reporting off.
const MaxIntervalDisable uint16 = 0xFFFF

// ReportSlot is one entry of a reporting context.
type ReportSlot struct {
	ClusterID        uint16
	Role             zcl.Role
	AttrID           uint16
	AttrType         uint8
	MinInterval      uint16
	MaxInterval      uint16
	ReportableChange []byte
	LastReported     []byte
	Flags            ReportFlags
}

func (s *ReportSlot) used() bool { return s.Flags&ReportSlotUsed != 0 }

func (s *ReportSlot) matches(clusterID uint16, role zcl.Role, attrID uint16) bool {
	return s.used() && s.ClusterID == clusterID && s.Role == role && s.AttrID == attrID
}

func (s ReportSlot) clone() ReportSlot {
	s.ReportableChange = bytes.Clone(s.ReportableChange)
	s.LastReported = bytes.Clone(s.LastReported)
	return s
}

// ReportingContext is a fixed-capacity table of reporting slots. The table
// is owned by the caller and never resized. A nil *ReportingContext behaves
// as a zero-capacity context.
type ReportingContext struct {
	mu    sync.Mutex
	table []ReportSlot
}

// NewReportingContext wraps a caller-owned table. An empty table yields the
// zero-capacity context (0, nil).
func NewReportingContext(table []ReportSlot) *ReportingContext {
	if len(table) == 0 {
		return &ReportingContext{}
	}
	return &ReportingContext{table: table}
}

// Count returns the capacity of the table.
func (r *ReportingContext) Count() int {
	if r == nil {
		return 0
	}
	return len(r.table)
}

// Table returns a copy of the slot table, or nil for a zero-capacity context.
func (r *ReportingContext) Table() []ReportSlot {
	if r == nil || r.table == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ReportSlot, len(r.table))
	for i := range r.table {
		out[i] = r.table[i].clone()
	}
	return out
}

// Used returns the number of occupied slots.
func (r *ReportingContext) Used() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for i := range r.table {
		if r.table[i].used() {
			n++
		}
	}
	return n
}

// Configure installs or updates the slot for (ClusterID, Role, AttrID) of
// cfg. A max interval of MaxIntervalDisable releases the slot instead.
func (r *ReportingContext) Configure(cfg ReportSlot) error {
	if r == nil {
		return ErrContextFull
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	free := -1
	for i := range r.table {
		s := &r.table[i]
		if s.matches(cfg.ClusterID, cfg.Role, cfg.AttrID) {
			if cfg.MaxInterval == MaxIntervalDisable {
				*s = ReportSlot{}
				return nil
			}
			s.AttrType = cfg.AttrType
			s.MinInterval = cfg.MinInterval
			s.MaxInterval = cfg.MaxInterval
			s.ReportableChange = bytes.Clone(cfg.ReportableChange)
			return nil
		}
		if free < 0 && !s.used() {
			free = i
		}
	}
	if cfg.MaxInterval == MaxIntervalDisable {
		return ErrSlotNotFound
	}
	if free < 0 {
		return ErrContextFull
	}
	slot := cfg.clone()
	slot.LastReported = nil
	slot.Flags = ReportSlotUsed
	r.table[free] = slot
	return nil
}

// Lookup returns a copy of the slot for the attribute.
func (r *ReportingContext) Lookup(clusterID uint16, role zcl.Role, attrID uint16) (ReportSlot, bool) {
	if r == nil {
		return ReportSlot{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.table {
		if r.table[i].matches(clusterID, role, attrID) {
			return r.table[i].clone(), true
		}
	}
	return ReportSlot{}, false
}

// Remove releases the slot for the attribute.
func (r *ReportingContext) Remove(clusterID uint16, role zcl.Role, attrID uint16) error {
	if r == nil {
		return ErrSlotNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.table {
		if r.table[i].matches(clusterID, role, attrID) {
			r.table[i] = ReportSlot{}
			return nil
		}
	}
	return ErrSlotNotFound
}

// MarkChanged records a new value of the attribute and returns true when the
// slot became due for a report. Discrete types are due on any change, analog
// types when the distance to the last reported value reaches the reportable
// change.
func (r *ReportingContext) MarkChanged(clusterID uint16, role zcl.Role, attrID uint16, value []byte) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.table {
		s := &r.table[i]
		if !s.matches(clusterID, role, attrID) {
			continue
		}
		if s.LastReported == nil || exceedsChange(s.AttrType, s.LastReported, value, s.ReportableChange) {
			s.Flags |= ReportSlotPending
		}
		return s.Flags&ReportSlotPending != 0
	}
	return false
}

// Reported stores the value sent in a report and clears the pending flag.
func (r *ReportingContext) Reported(clusterID uint16, role zcl.Role, attrID uint16, value []byte) error {
	if r == nil {
		return ErrSlotNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.table {
		s := &r.table[i]
		if s.matches(clusterID, role, attrID) {
			s.LastReported = bytes.Clone(value)
			s.Flags &^= ReportSlotPending
			return nil
		}
	}
	return ErrSlotNotFound
}

// Pending returns copies of the slots that are due for a report.
func (r *ReportingContext) Pending() []ReportSlot {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ReportSlot
	for i := range r.table {
		if r.table[i].used() && r.table[i].Flags&ReportSlotPending != 0 {
			out = append(out, r.table[i].clone())
		}
	}
	return out
}

func exceedsChange(typeID uint8, last, cur, change []byte) bool {
	if bytes.Equal(last, cur) {
		return false
	}
	if !zcl.IsAnalog(typeID) || len(change) == 0 {
		return true
	}
	a, okA := numeric(typeID, last)
	b, okB := numeric(typeID, cur)
	d, okD := numeric(typeID, change)
	if !okA || !okB || !okD {
		return true
	}
	return math.Abs(b-a) >= d
}

func numeric(typeID uint8, raw []byte) (float64, bool) {
	v, _, err := zcl.DecodeValue(typeID, raw)
	if err != nil {
		return 0, false
	}
	switch n := v.(type) {
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
