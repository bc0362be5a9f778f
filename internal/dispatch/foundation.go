package dispatch

import (
	"encoding/binary"
	"fmt"
	"sort"

	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
)

// WriteRecord is one record of a Write Attributes command.
type WriteRecord struct {
	AttrID uint16
	Type   uint8
	Value  []byte
}

// ParseWriteRecords parses the payload of a Write Attributes command.
func ParseWriteRecords(payload []byte) ([]WriteRecord, error) {
	var recs []WriteRecord
	for len(payload) > 0 {
		if len(payload) < 3 {
			return nil, fmt.Errorf("%w: write record truncated", ErrMalformed)
		}
		rec := WriteRecord{AttrID: binary.LittleEndian.Uint16(payload[0:2]), Type: payload[2]}
		n, err := zcl.ValueLength(rec.Type, payload[3:])
		if err != nil {
			return nil, fmt.Errorf("%w: attribute 0x%04X: %v", ErrMalformed, rec.AttrID, err)
		}
		rec.Value = append([]byte(nil), payload[3:3+n]...)
		recs = append(recs, rec)
		payload = payload[3+n:]
	}
	return recs, nil
}

func (q *request) foundation(payload []byte) []byte {
	h := q.header
	switch h.Command {
	case zcl.FoundationReadAttributes:
		return q.readAttributes(payload)
	case zcl.FoundationWriteAttributes:
		return q.writeAttributes(payload, false, true)
	case zcl.FoundationWriteAttributesUndivided:
		return q.writeAttributes(payload, true, true)
	case zcl.FoundationWriteAttributesNoResp:
		return q.writeAttributes(payload, false, false)
	case zcl.FoundationConfigReporting:
		return q.configureReporting(payload)
	case zcl.FoundationReadReportingConfig:
		return q.readReportingConfig(payload)
	case zcl.FoundationDiscoverAttributes:
		return q.discoverAttributes(payload)
	case zcl.FoundationDefaultResponse:
		return nil
	}
	return q.router.defaultResponse(h, zcl.ZCLStatusUnsupGeneralCmd)
}

func (q *request) readAttributes(payload []byte) []byte {
	if len(payload) == 0 || len(payload)%2 != 0 {
		return q.router.defaultResponse(q.header, zcl.ZCLStatusMalformedCommand)
	}
	var out []byte
	for i := 0; i+1 < len(payload); i += 2 {
		id := binary.LittleEndian.Uint16(payload[i:])
		out = binary.LittleEndian.AppendUint16(out, id)

		a := q.cluster.Attribute(id)
		if a == nil {
			if typ, v, ok := q.globalAttribute(id); ok {
				out = append(out, zcl.ZCLStatusSuccess, typ)
				out = append(out, v...)
				continue
			}
			out = append(out, zcl.ZCLStatusUnsupportedAttr)
			continue
		}
		if !a.Readable() {
			out = append(out, zcl.ZCLStatusWriteOnly)
			continue
		}
		v, status := q.load(a)
		if status != zcl.ZCLStatusSuccess {
			out = append(out, status)
			continue
		}
		out = append(out, zcl.ZCLStatusSuccess, a.Type)
		out = append(out, v...)
	}
	return q.respond(zcl.FoundationReadAttributesResponse, out)
}

// globalAttribute answers ClusterRevision for clusters that do not declare it.
func (q *request) globalAttribute(id uint16) (uint8, []byte, bool) {
	if id != zcl.AttrClusterRevision || q.router.registry == nil {
		return 0, nil, false
	}
	def := q.router.registry.Get(q.cluster.ClusterID)
	if def == nil || def.Revision == 0 {
		return 0, nil, false
	}
	return zcl.TypeUint16, binary.LittleEndian.AppendUint16(nil, def.Revision), true
}

func (q *request) checkWrite(rec WriteRecord) (*profile.Attribute, uint8) {
	a := q.cluster.Attribute(rec.AttrID)
	switch {
	case a == nil:
		return nil, zcl.ZCLStatusUnsupportedAttr
	case !a.Writable():
		return nil, zcl.ZCLStatusReadOnly
	case a.Type != rec.Type:
		return nil, zcl.ZCLStatusInvalidDataType
	}
	return a, zcl.ZCLStatusSuccess
}

func (q *request) writeAttributes(payload []byte, undivided, respond bool) []byte {
	recs, err := ParseWriteRecords(payload)
	if err != nil || len(recs) == 0 {
		if !respond {
			return nil
		}
		return q.router.defaultResponse(q.header, zcl.ZCLStatusMalformedCommand)
	}

	q.router.writeMu.Lock()
	defer q.router.writeMu.Unlock()

	statuses := make([]uint8, len(recs))
	attrs := make([]*profile.Attribute, len(recs))
	failed := false
	for i, rec := range recs {
		attrs[i], statuses[i] = q.checkWrite(rec)
		if statuses[i] != zcl.ZCLStatusSuccess {
			failed = true
		}
	}

	if !(undivided && failed) {
		for i, rec := range recs {
			if attrs[i] == nil {
				continue
			}
			if err := q.store(attrs[i], rec.Value); err != nil {
				q.router.logger.Warn("attribute write failed", "device", q.device.Name, "error", err)
				statuses[i] = zcl.ZCLStatusFailure
				failed = true
			}
		}
	}
	if !respond {
		return nil
	}
	if !failed {
		return q.respond(zcl.FoundationWriteAttributesResp, []byte{zcl.ZCLStatusSuccess})
	}
	var out []byte
	for i, rec := range recs {
		if statuses[i] == zcl.ZCLStatusSuccess {
			continue
		}
		out = append(out, statuses[i])
		out = binary.LittleEndian.AppendUint16(out, rec.AttrID)
	}
	return q.respond(zcl.FoundationWriteAttributesResp, out)
}

func (q *request) discoverAttributes(payload []byte) []byte {
	if len(payload) != 3 {
		return q.router.defaultResponse(q.header, zcl.ZCLStatusMalformedCommand)
	}
	start := binary.LittleEndian.Uint16(payload[0:2])
	maxAttrs := int(payload[2])

	ids := make([]int, 0, len(q.cluster.Attributes))
	types := make(map[uint16]uint8, len(q.cluster.Attributes))
	for _, a := range q.cluster.Attributes {
		if a.ID >= start {
			ids = append(ids, int(a.ID))
			types[a.ID] = a.Type
		}
	}
	sort.Ints(ids)

	complete := uint8(1)
	if len(ids) > maxAttrs {
		ids = ids[:maxAttrs]
		complete = 0
	}
	out := []byte{complete}
	for _, id := range ids {
		out = binary.LittleEndian.AppendUint16(out, uint16(id))
		out = append(out, types[uint16(id)])
	}
	return q.respond(zcl.FoundationDiscoverAttributesResp, out)
}
