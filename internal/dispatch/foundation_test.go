package dispatch

import (
	"bytes"
	"testing"

	"zigbee-ha-profile/internal/events"
	"zigbee-ha-profile/internal/zcl"
)

func TestReadAttributes(t *testing.T) {
	f := newFixture(t)
	got := f.handle(t, 1, zcl.ClusterOnOff, frame(0x00, 0x11, zcl.FoundationReadAttributes,
		0x00, 0x00, // OnOff
		0x34, 0x12, // unknown
		0xFD, 0xFF, // ClusterRevision
	))
	want := frame(0x18, 0x11, zcl.FoundationReadAttributesResponse,
		0x00, 0x00, zcl.ZCLStatusSuccess, zcl.TypeBool, 0x00,
		0x34, 0x12, zcl.ZCLStatusUnsupportedAttr,
		0xFD, 0xFF, zcl.ZCLStatusSuccess, zcl.TypeUint16, 0x02, 0x00,
	)
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}

	got = f.handle(t, 1, zcl.ClusterOnOff, frame(0x00, 0x12, zcl.FoundationReadAttributes, 0x00))
	if !bytes.Equal(got, frame(0x18, 0x12, zcl.FoundationDefaultResponse, zcl.FoundationReadAttributes, zcl.ZCLStatusMalformedCommand)) {
		t.Errorf("odd payload: got % X", got)
	}
}

func TestReadPlaceholderCluster(t *testing.T) {
	f := newFixture(t)
	// temperature sensor endpoint has an Identify client without attributes
	got := f.handle(t, 3, zcl.ClusterIdentify, frame(0x08, 1, zcl.FoundationReadAttributes, 0x00, 0x00))
	want := []byte{0x10, 1, zcl.FoundationReadAttributesResponse, 0x00, 0x00, zcl.ZCLStatusUnsupportedAttr}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
}

func TestWriteAttributes(t *testing.T) {
	f := newFixture(t)
	written := 0
	f.bus.On(events.EventAttributeWritten, func(events.Event) { written++ })

	got := f.handle(t, 1, zcl.ClusterLevelControl, frame(0x00, 1, zcl.FoundationWriteAttributes,
		0x10, 0x00, zcl.TypeUint16, 0x0A, 0x00))
	if !bytes.Equal(got, frame(0x18, 1, zcl.FoundationWriteAttributesResp, zcl.ZCLStatusSuccess)) {
		t.Errorf("got % X", got)
	}
	if v := f.value(t, "lab", 1, zcl.ClusterLevelControl, 0x0010); !bytes.Equal(v, []byte{0x0A, 0x00}) {
		t.Errorf("stored % X", v)
	}
	if written != 1 {
		t.Errorf("%d write events, want 1", written)
	}

	got = f.handle(t, 1, zcl.ClusterLevelControl, frame(0x00, 2, zcl.FoundationWriteAttributes,
		0x00, 0x00, zcl.TypeUint8, 0x05, // CurrentLevel is read-only
		0x10, 0x00, zcl.TypeUint8, 0x05, // wrong type
		0x11, 0x00, zcl.TypeUint8, 0x80, // OnLevel
	))
	want := frame(0x18, 2, zcl.FoundationWriteAttributesResp,
		zcl.ZCLStatusReadOnly, 0x00, 0x00,
		zcl.ZCLStatusInvalidDataType, 0x10, 0x00,
	)
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
	if v := f.value(t, "lab", 1, zcl.ClusterLevelControl, 0x0011); !bytes.Equal(v, []byte{0x80}) {
		t.Errorf("OnLevel = % X, want 80", v)
	}
}

func TestWriteAttributesUndivided(t *testing.T) {
	f := newFixture(t)
	got := f.handle(t, 1, zcl.ClusterLevelControl, frame(0x00, 1, zcl.FoundationWriteAttributesUndivided,
		0x11, 0x00, zcl.TypeUint8, 0x40,
		0x00, 0x00, zcl.TypeUint8, 0x05,
	))
	want := frame(0x18, 1, zcl.FoundationWriteAttributesResp, zcl.ZCLStatusReadOnly, 0x00, 0x00)
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
	if v := f.value(t, "lab", 1, zcl.ClusterLevelControl, 0x0011); !bytes.Equal(v, []byte{0xFF}) {
		t.Errorf("undivided write partially applied: OnLevel = % X", v)
	}
}

func TestWriteAttributesNoResponse(t *testing.T) {
	f := newFixture(t)
	got := f.handle(t, 1, zcl.ClusterIdentify, frame(0x00, 1, zcl.FoundationWriteAttributesNoResp,
		0x00, 0x00, zcl.TypeUint16, 0x1E, 0x00))
	if got != nil {
		t.Errorf("got response % X", got)
	}
	if v := f.value(t, "lab", 1, zcl.ClusterIdentify, 0x0000); !bytes.Equal(v, []byte{0x1E, 0x00}) {
		t.Errorf("IdentifyTime = % X", v)
	}
}

func TestDiscoverAttributes(t *testing.T) {
	f := newFixture(t)
	got := f.handle(t, 1, zcl.ClusterOnOff, frame(0x00, 1, zcl.FoundationDiscoverAttributes, 0x00, 0x00, 0x02))
	want := frame(0x18, 1, zcl.FoundationDiscoverAttributesResp, 0x00,
		0x00, 0x00, zcl.TypeBool,
		0x00, 0x40, zcl.TypeBool,
	)
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}

	got = f.handle(t, 1, zcl.ClusterOnOff, frame(0x00, 2, zcl.FoundationDiscoverAttributes, 0x02, 0x40, 0x10))
	want = frame(0x18, 2, zcl.FoundationDiscoverAttributesResp, 0x01,
		0x02, 0x40, zcl.TypeUint16,
		0x03, 0x40, zcl.TypeEnum8,
	)
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
}

func TestUnsupportedGeneralCommand(t *testing.T) {
	f := newFixture(t)
	got := f.handle(t, 1, zcl.ClusterOnOff, frame(0x00, 1, 0x11))
	if !bytes.Equal(got, frame(0x18, 1, zcl.FoundationDefaultResponse, 0x11, zcl.ZCLStatusUnsupGeneralCmd)) {
		t.Errorf("got % X", got)
	}
}
