package profile

import (
	"encoding/binary"
	"fmt"
	"slices"

	"zigbee-ha-profile/internal/zcl"
)

// SimpleDescriptor is the ZDO summary of one endpoint used by service discovery.
type SimpleDescriptor struct {
	Endpoint        uint8
	ProfileID       uint16
	DeviceID        uint16
	DeviceVersion   uint8
	InClusterCount  int
	OutClusterCount int
	InClusters      []uint16
	OutClusters     []uint16
}

// Matches reports whether the descriptor would answer a ZDO Match
// Descriptor request for the given profile and cluster lists: any input
// cluster of the request served here, or any output cluster consumed here.
func (s *SimpleDescriptor) Matches(profileID uint16, in, out []uint16) bool {
	if profileID != s.ProfileID && profileID != 0xFFFF {
		return false
	}
	for _, id := range in {
		if slices.Contains(s.InClusters, id) {
			return true
		}
	}
	for _, id := range out {
		if slices.Contains(s.OutClusters, id) {
			return true
		}
	}
	return false
}

// MarshalBinary encodes the descriptor in ZDO wire format.
func (s *SimpleDescriptor) MarshalBinary() ([]byte, error) {
	if s.InClusterCount != len(s.InClusters) || s.OutClusterCount != len(s.OutClusters) {
		return nil, fmt.Errorf("simple descriptor: counts %d/%d do not match lists %d/%d",
			s.InClusterCount, s.OutClusterCount, len(s.InClusters), len(s.OutClusters))
	}
	if s.InClusterCount > 0xFF || s.OutClusterCount > 0xFF {
		return nil, fmt.Errorf("simple descriptor: too many clusters (%d in, %d out)", s.InClusterCount, s.OutClusterCount)
	}
	if s.DeviceVersion > 0x0F {
		return nil, fmt.Errorf("simple descriptor: device version %d exceeds 4 bits", s.DeviceVersion)
	}
	buf := make([]byte, 0, 8+2*(len(s.InClusters)+len(s.OutClusters)))
	buf = append(buf, s.Endpoint)
	buf = binary.LittleEndian.AppendUint16(buf, s.ProfileID)
	buf = binary.LittleEndian.AppendUint16(buf, s.DeviceID)
	buf = append(buf, s.DeviceVersion&0x0F)
	buf = append(buf, uint8(len(s.InClusters)))
	for _, id := range s.InClusters {
		buf = binary.LittleEndian.AppendUint16(buf, id)
	}
	buf = append(buf, uint8(len(s.OutClusters)))
	for _, id := range s.OutClusters {
		buf = binary.LittleEndian.AppendUint16(buf, id)
	}
	return buf, nil
}

// UnmarshalBinary decodes a ZDO simple descriptor. Trailing bytes are an error.
func (s *SimpleDescriptor) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("simple descriptor: too short (%d bytes)", len(data))
	}
	var d SimpleDescriptor
	d.Endpoint = data[0]
	d.ProfileID = binary.LittleEndian.Uint16(data[1:3])
	d.DeviceID = binary.LittleEndian.Uint16(data[3:5])
	d.DeviceVersion = data[5] & 0x0F
	off := 6

	readList := func() ([]uint16, error) {
		if off >= len(data) {
			return nil, fmt.Errorf("simple descriptor: missing cluster count at offset %d", off)
		}
		n := int(data[off])
		off++
		if off+2*n > len(data) {
			return nil, fmt.Errorf("simple descriptor: cluster list truncated: need %d bytes, have %d", 2*n, len(data)-off)
		}
		if n == 0 {
			return nil, nil
		}
		ids := make([]uint16, n)
		for i := range ids {
			ids[i] = binary.LittleEndian.Uint16(data[off:])
			off += 2
		}
		return ids, nil
	}

	var err error
	if d.InClusters, err = readList(); err != nil {
		return err
	}
	if d.OutClusters, err = readList(); err != nil {
		return err
	}
	if off != len(data) {
		return fmt.Errorf("simple descriptor: %d trailing bytes", len(data)-off)
	}
	d.InClusterCount = len(d.InClusters)
	d.OutClusterCount = len(d.OutClusters)
	*s = d
	return nil
}

// validEndpoint reports whether ep is an application endpoint number.
func validEndpoint(ep uint8) bool {
	return ep >= zcl.MinAppEndpoint && ep <= zcl.MaxAppEndpoint
}
