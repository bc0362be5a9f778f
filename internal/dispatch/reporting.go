package dispatch

import (
	"encoding/binary"
	"errors"
	"fmt"

	"zigbee-ha-profile/internal/events"
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
)

// Reporting record directions
const (
	directionReported uint8 = 0x00
	directionReceived uint8 = 0x01
)

// ReportingRecord is one attribute reporting configuration record.
type ReportingRecord struct {
	Direction        uint8
	AttrID           uint16
	Type             uint8
	MinInterval      uint16
	MaxInterval      uint16
	ReportableChange []byte
	Timeout          uint16
}

// ParseReportingRecords parses the payload of a Configure Reporting command.
// The reportable change field is present only for analog types.
func ParseReportingRecords(payload []byte) ([]ReportingRecord, error) {
	var recs []ReportingRecord
	for len(payload) > 0 {
		if len(payload) < 3 {
			return nil, fmt.Errorf("%w: reporting record truncated", ErrMalformed)
		}
		rec := ReportingRecord{Direction: payload[0], AttrID: binary.LittleEndian.Uint16(payload[1:3])}
		payload = payload[3:]
		switch rec.Direction {
		case directionReported:
			if len(payload) < 5 {
				return nil, fmt.Errorf("%w: attribute 0x%04X reporting intervals truncated", ErrMalformed, rec.AttrID)
			}
			rec.Type = payload[0]
			rec.MinInterval = binary.LittleEndian.Uint16(payload[1:3])
			rec.MaxInterval = binary.LittleEndian.Uint16(payload[3:5])
			payload = payload[5:]
			if zcl.IsAnalog(rec.Type) {
				n := zcl.TypeSize(rec.Type)
				if n <= 0 || len(payload) < n {
					return nil, fmt.Errorf("%w: attribute 0x%04X reportable change truncated", ErrMalformed, rec.AttrID)
				}
				rec.ReportableChange = append([]byte(nil), payload[:n]...)
				payload = payload[n:]
			}
		case directionReceived:
			if len(payload) < 2 {
				return nil, fmt.Errorf("%w: attribute 0x%04X timeout truncated", ErrMalformed, rec.AttrID)
			}
			rec.Timeout = binary.LittleEndian.Uint16(payload[0:2])
			payload = payload[2:]
		default:
			return nil, fmt.Errorf("%w: reporting direction 0x%02X", ErrMalformed, rec.Direction)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (q *request) configureOne(rec ReportingRecord) uint8 {
	if rec.Direction == directionReceived {
		// received reports are tracked by the remote side's server
		return zcl.ZCLStatusSuccess
	}
	a := q.cluster.Attribute(rec.AttrID)
	switch {
	case a == nil:
		return zcl.ZCLStatusUnsupportedAttr
	case !a.Reportable():
		return zcl.ZCLStatusUnreportable
	case a.Type != rec.Type:
		return zcl.ZCLStatusInvalidDataType
	}
	err := q.ep.Reporting.Configure(profile.ReportSlot{
		ClusterID:        q.cluster.ClusterID,
		Role:             q.cluster.Role,
		AttrID:           a.ID,
		AttrType:         a.Type,
		MinInterval:      rec.MinInterval,
		MaxInterval:      rec.MaxInterval,
		ReportableChange: rec.ReportableChange,
	})
	switch {
	case errors.Is(err, profile.ErrContextFull):
		return zcl.ZCLStatusInsufficientSpace
	case errors.Is(err, profile.ErrSlotNotFound):
		// disabling a report that was never configured
	case err != nil:
		return zcl.ZCLStatusFailure
	}
	q.router.bus.Emit(events.Event{Type: events.EventReportingConfigured, Data: events.ReportingConfigured{
		Device:      q.device.Name,
		Endpoint:    q.ep.ID,
		ClusterID:   q.cluster.ClusterID,
		Role:        q.cluster.Role,
		AttrID:      a.ID,
		MinInterval: rec.MinInterval,
		MaxInterval: rec.MaxInterval,
		Disabled:    rec.MaxInterval == profile.MaxIntervalDisable,
	}})
	return zcl.ZCLStatusSuccess
}

func (q *request) configureReporting(payload []byte) []byte {
	recs, err := ParseReportingRecords(payload)
	if err != nil || len(recs) == 0 {
		return q.router.defaultResponse(q.header, zcl.ZCLStatusMalformedCommand)
	}
	var out []byte
	for _, rec := range recs {
		st := q.configureOne(rec)
		if st == zcl.ZCLStatusSuccess {
			continue
		}
		out = append(out, st, rec.Direction)
		out = binary.LittleEndian.AppendUint16(out, rec.AttrID)
	}
	if out == nil {
		out = []byte{zcl.ZCLStatusSuccess}
	}
	return q.respond(zcl.FoundationConfigReportingResp, out)
}

func (q *request) readReportingConfig(payload []byte) []byte {
	if len(payload) == 0 || len(payload)%3 != 0 {
		return q.router.defaultResponse(q.header, zcl.ZCLStatusMalformedCommand)
	}
	var out []byte
	for i := 0; i+2 < len(payload); i += 3 {
		dir := payload[i]
		id := binary.LittleEndian.Uint16(payload[i+1:])
		a := q.cluster.Attribute(id)
		var slot profile.ReportSlot
		status := zcl.ZCLStatusSuccess
		switch {
		case a == nil:
			status = zcl.ZCLStatusUnsupportedAttr
		case !a.Reportable():
			status = zcl.ZCLStatusUnreportable
		case dir != directionReported:
			status = zcl.ZCLStatusUnsupGeneralCmd
		default:
			var ok bool
			if slot, ok = q.ep.Reporting.Lookup(q.cluster.ClusterID, q.cluster.Role, id); !ok {
				status = zcl.ZCLStatusNotFound
			}
		}
		out = append(out, status, dir)
		out = binary.LittleEndian.AppendUint16(out, id)
		if status != zcl.ZCLStatusSuccess {
			continue
		}
		out = append(out, slot.AttrType)
		out = binary.LittleEndian.AppendUint16(out, slot.MinInterval)
		out = binary.LittleEndian.AppendUint16(out, slot.MaxInterval)
		if zcl.IsAnalog(slot.AttrType) {
			change := slot.ReportableChange
			if n := zcl.TypeSize(slot.AttrType); len(change) != n {
				change = make([]byte, n)
			}
			out = append(out, change...)
		}
	}
	return q.respond(zcl.FoundationReadReportingConfigResp, out)
}
