package profile

import (
	"bytes"
	"reflect"
	"testing"

	"zigbee-ha-profile/internal/zcl"
)

func TestSimpleDescriptorMarshal(t *testing.T) {
	sd := &SimpleDescriptor{
		Endpoint:        1,
		ProfileID:       zcl.ProfileHomeAutomation,
		DeviceID:        0x000A,
		DeviceVersion:   1,
		InClusterCount:  2,
		OutClusterCount: 1,
		InClusters:      []uint16{0x0003, 0x0101},
		OutClusters:     []uint16{0x0019},
	}
	got, err := sd.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x01,
		0x04, 0x01,
		0x0A, 0x00,
		0x01,
		0x02, 0x03, 0x00, 0x01, 0x01,
		0x01, 0x19, 0x00,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}

	var back SimpleDescriptor
	if err := back.UnmarshalBinary(got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(&back, sd) {
		t.Errorf("round trip = %+v, want %+v", back, *sd)
	}
}

func TestSimpleDescriptorEmptyLists(t *testing.T) {
	sd := &SimpleDescriptor{Endpoint: 5, ProfileID: zcl.ProfileHomeAutomation}
	data, err := sd.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 8 {
		t.Errorf("len = %d, want 8", len(data))
	}
	var back SimpleDescriptor
	if err := back.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if back.InClusters != nil || back.OutClusters != nil {
		t.Errorf("empty lists decoded as %v/%v", back.InClusters, back.OutClusters)
	}
}

func TestSimpleDescriptorMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{1, 4, 1}},
		{"truncated in list", []byte{1, 4, 1, 0, 1, 1, 2, 3, 0}},
		{"missing out count", []byte{1, 4, 1, 0, 1, 1, 1, 3, 0}},
		{"trailing", []byte{1, 4, 1, 0, 1, 1, 0, 0, 0xAA}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sd SimpleDescriptor
			if err := sd.UnmarshalBinary(tt.data); err == nil {
				t.Errorf("decoded %+v from malformed input", sd)
			}
		})
	}

	bad := &SimpleDescriptor{InClusterCount: 2, InClusters: []uint16{1}}
	if _, err := bad.MarshalBinary(); err == nil {
		t.Error("count/list mismatch encoded")
	}
	bad = &SimpleDescriptor{DeviceVersion: 0x10}
	if _, err := bad.MarshalBinary(); err == nil {
		t.Error("5-bit device version encoded")
	}
}

func TestSimpleDescriptorMatches(t *testing.T) {
	sd := &SimpleDescriptor{
		ProfileID:   zcl.ProfileHomeAutomation,
		InClusters:  []uint16{zcl.ClusterBasic, zcl.ClusterOnOff},
		OutClusters: []uint16{zcl.ClusterOTAUpgrade},
	}
	tests := []struct {
		profile uint16
		in, out []uint16
		want    bool
	}{
		{zcl.ProfileHomeAutomation, []uint16{zcl.ClusterOnOff}, nil, true},
		{0xFFFF, nil, []uint16{zcl.ClusterOTAUpgrade}, true},
		{zcl.ProfileHomeAutomation, []uint16{zcl.ClusterOTAUpgrade}, nil, false},
		{zcl.ProfileSmartEnergy, []uint16{zcl.ClusterOnOff}, nil, false},
	}
	for i, tt := range tests {
		if got := sd.Matches(tt.profile, tt.in, tt.out); got != tt.want {
			t.Errorf("case %d: got %v, want %v", i, got, tt.want)
		}
	}
}
