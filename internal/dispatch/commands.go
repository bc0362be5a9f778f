package dispatch

import (
	"encoding/binary"
	"errors"
	"fmt"

	"zigbee-ha-profile/internal/events"
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// On/Off commands
const (
	cmdOff    uint8 = 0x00
	cmdOn     uint8 = 0x01
	cmdToggle uint8 = 0x02
)

// Level Control commands
const (
	cmdMoveToLevel          uint8 = 0x00
	cmdStop                 uint8 = 0x03
	cmdMoveToLevelWithOnOff uint8 = 0x04
	cmdStopWithOnOff        uint8 = 0x07
)

// Door Lock commands; responses reuse the request IDs.
const (
	cmdLockDoor   uint8 = 0x00
	cmdUnlockDoor uint8 = 0x01
	cmdToggleDoor uint8 = 0x02
)

const (
	attrOnOff               uint16 = 0x0000
	attrCurrentLevel        uint16 = 0x0000
	attrOnOffTransitionTime uint16 = 0x0010
	attrLockState           uint16 = 0x0000
)

// useOnOffTransitionTime in a Move to Level command selects the
// OnOffTransitionTime attribute.
const useOnOffTransitionTime uint16 = 0xFFFF

func (q *request) clusterCommand(payload []byte) []byte {
	if q.header.ToClient() {
		return q.router.defaultResponse(q.header, zcl.ZCLStatusUnsupClusterCmd)
	}
	var status uint8
	switch q.cluster.ClusterID {
	case zcl.ClusterOnOff:
		status = q.onOffCommand()
	case zcl.ClusterLevelControl:
		status = q.levelCommand(payload)
	case zcl.ClusterDoorLock:
		return q.doorLockCommand()
	default:
		status = zcl.ZCLStatusUnsupClusterCmd
	}
	return q.router.defaultResponse(q.header, status)
}

// set writes an attribute of the addressed cluster from inside a command.
func (q *request) set(c *profile.ClusterDescriptor, attrID uint16, value []byte) uint8 {
	a := c.Attribute(attrID)
	if a == nil {
		return zcl.ZCLStatusFailure
	}
	q.router.writeMu.Lock()
	defer q.router.writeMu.Unlock()
	if err := q.router.setAttribute(q.device, q.ep, c, a, value); err != nil {
		q.router.logger.Warn("command write failed", "device", q.device.Name, "error", err)
		return zcl.ZCLStatusFailure
	}
	return zcl.ZCLStatusSuccess
}

func (q *request) onOffCommand() uint8 {
	switch q.header.Command {
	case cmdOff:
		return q.set(q.cluster, attrOnOff, []byte{0})
	case cmdOn:
		return q.set(q.cluster, attrOnOff, []byte{1})
	case cmdToggle:
		a := q.cluster.Attribute(attrOnOff)
		if a == nil {
			return zcl.ZCLStatusFailure
		}
		cur, status := q.load(a)
		if status != zcl.ZCLStatusSuccess || len(cur) != 1 {
			cur = []byte{0}
		}
		return q.set(q.cluster, attrOnOff, []byte{cur[0] ^ 1})
	}
	return zcl.ZCLStatusUnsupClusterCmd
}

func (q *request) levelCommand(payload []byte) uint8 {
	switch q.header.Command {
	case cmdMoveToLevel, cmdMoveToLevelWithOnOff:
		if len(payload) < 3 {
			return zcl.ZCLStatusMalformedCommand
		}
		return q.moveToLevel(payload[0], binary.LittleEndian.Uint16(payload[1:3]), q.header.Command == cmdMoveToLevelWithOnOff)
	case cmdStop, cmdStopWithOnOff:
		q.router.writeMu.Lock()
		defer q.router.writeMu.Unlock()
		return q.cancelTransition(attrCurrentLevel)
	}
	return zcl.ZCLStatusUnsupClusterCmd
}

// moveToLevel starts a CVC transition of CurrentLevel. Without a transition
// time or a free CVC slot the level is set at once.
func (q *request) moveToLevel(level uint8, transition uint16, withOnOff bool) uint8 {
	a := q.cluster.Attribute(attrCurrentLevel)
	if a == nil {
		return zcl.ZCLStatusFailure
	}
	if transition == useOnOffTransitionTime {
		transition = 0
		if t := q.cluster.Attribute(attrOnOffTransitionTime); t != nil {
			if v, st := q.load(t); st == zcl.ZCLStatusSuccess && len(v) == 2 {
				transition = binary.LittleEndian.Uint16(v)
			}
		}
	}

	if withOnOff {
		if onoff := q.ep.Cluster(zcl.ClusterOnOff, zcl.RoleServer); onoff != nil {
			on := byte(0)
			if level > 0 {
				on = 1
			}
			if st := q.set(onoff, attrOnOff, []byte{on}); st != zcl.ZCLStatusSuccess {
				return st
			}
		}
	}

	start := int64(level)
	if cur, st := q.load(a); st == zcl.ZCLStatusSuccess && len(cur) == 1 {
		start = int64(cur[0])
	}
	if transition > 0 && start != int64(level) {
		err := q.ep.CVC.Begin(q.cluster.ClusterID, a.ID, start, int64(level), transition)
		if err == nil {
			return zcl.ZCLStatusSuccess
		}
		q.router.logger.Debug("no cvc slot, setting level at once", "device", q.device.Name, "endpoint", q.ep.ID, "error", err)
	}
	return q.setNow(a, []byte{level})
}

// cancelTransition stops a running transition of attrID. The caller holds
// writeMu.
func (q *request) cancelTransition(attrID uint16) uint8 {
	err := q.ep.CVC.Cancel(q.cluster.ClusterID, attrID)
	if err != nil && !errors.Is(err, profile.ErrSlotNotFound) {
		q.router.logger.Warn("cancel transition failed", "device", q.device.Name, "endpoint", q.ep.ID,
			"cluster", fmt.Sprintf("0x%04X", q.cluster.ClusterID), "attr", fmt.Sprintf("0x%04X", attrID), "error", err)
		return zcl.ZCLStatusFailure
	}
	return zcl.ZCLStatusSuccess
}

// setNow cancels any transition of a and writes value in one critical
// section with Tick, so an update already computed by a tick cannot land
// after the final value.
func (q *request) setNow(a *profile.Attribute, value []byte) uint8 {
	q.router.writeMu.Lock()
	defer q.router.writeMu.Unlock()
	if st := q.cancelTransition(a.ID); st != zcl.ZCLStatusSuccess {
		return st
	}
	if err := q.router.setAttribute(q.device, q.ep, q.cluster, a, value); err != nil {
		q.router.logger.Warn("command write failed", "device", q.device.Name, "error", err)
		return zcl.ZCLStatusFailure
	}
	return zcl.ZCLStatusSuccess
}

func (q *request) doorLockCommand() []byte {
	var state uint8
	switch q.header.Command {
	case cmdLockDoor:
		state = clusters.LockStateLocked
	case cmdUnlockDoor:
		state = clusters.LockStateUnlocked
	case cmdToggleDoor:
		state = clusters.LockStateLocked
		if a := q.cluster.Attribute(attrLockState); a != nil {
			if cur, st := q.load(a); st == zcl.ZCLStatusSuccess && len(cur) == 1 && cur[0] == clusters.LockStateLocked {
				state = clusters.LockStateUnlocked
			}
		}
	default:
		return q.router.defaultResponse(q.header, zcl.ZCLStatusUnsupClusterCmd)
	}
	status := q.set(q.cluster, attrLockState, []byte{state})
	h := responseHeader(q.header, zcl.FrameTypeCluster, q.header.Command)
	return AppendHeader(h, []byte{status})
}

// Tick advances every running transition by delta tenths of a second and
// writes the interpolated values. It returns the number of updates applied.
func (r *Router) Tick(delta uint16) int {
	r.mu.RLock()
	entries := make([]endpointEntry, 0, len(r.endpoints))
	for _, e := range r.endpoints {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	n := 0
	for _, e := range entries {
		n += r.advance(e, delta)
	}
	return n
}

// advance steps the transitions of one endpoint and writes their values
// while holding writeMu, so commands that cancel a transition see either
// none or all of a step.
func (r *Router) advance(e endpointEntry, delta uint16) int {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	n := 0
	for _, u := range e.ep.CVC.Advance(delta) {
		if err := r.applyTransition(e, u); err != nil {
			r.logger.Warn("transition update failed", "device", e.device.Name, "endpoint", e.ep.ID, "error", err)
			continue
		}
		n++
	}
	return n
}

// applyTransition writes one CVC update. The caller holds writeMu.
func (r *Router) applyTransition(e endpointEntry, u profile.CVCUpdate) error {
	c := e.ep.Cluster(u.ClusterID, zcl.RoleServer)
	if c == nil {
		return fmt.Errorf("%w: cluster 0x%04X", profile.ErrNoCluster, u.ClusterID)
	}
	a := c.Attribute(u.AttrID)
	if a == nil {
		return fmt.Errorf("%w: cluster 0x%04X attribute 0x%04X", profile.ErrNoAttribute, u.ClusterID, u.AttrID)
	}
	value, err := zcl.EncodeValue(a.Type, u.Value)
	if err != nil {
		return err
	}
	if err := r.setAttribute(e.device, e.ep, c, a, value); err != nil {
		return err
	}
	r.bus.Emit(events.Event{Type: events.EventTransition, Data: events.Transition{
		Device:    e.device.Name,
		Endpoint:  e.ep.ID,
		ClusterID: u.ClusterID,
		AttrID:    u.AttrID,
		Value:     u.Value,
		Done:      u.Done,
	}})
	return nil
}
