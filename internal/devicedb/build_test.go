package devicedb

import (
	"bytes"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/store"
	"zigbee-ha-profile/internal/zcl"
)

func u16(v uint16) *uint16 { return &v }

func lightSpec() DeviceSpec {
	return DeviceSpec{
		Name: "hall",
		Endpoints: []EndpointSpec{{
			Endpoint: 1,
			Template: "dimmable_light",
			Clusters: []ClusterSpec{
				{
					Cluster:          zcl.ClusterOnOff,
					ManufacturerCode: u16(0x1234),
					Values:           map[uint16]any{0x0000: true},
				},
				{
					Cluster:    zcl.ClusterLevelControl,
					Attributes: []uint16{0x0000, 0x0010, 0x0011},
					Values:     map[uint16]any{0x0011: 128},
					Reporting:  []ReportingSpec{{Attribute: 0x0000, Min: 1, Max: 60, Change: 5}},
				},
			},
		}},
	}
}

func get(t *testing.T, s store.Store, ep uint8, cluster, attr uint16) []byte {
	t.Helper()
	v, err := s.GetAttribute(store.Key{Device: "hall", Endpoint: ep, ClusterID: cluster, Role: zcl.RoleServer, AttrID: attr})
	if err != nil {
		t.Fatalf("cluster 0x%04X attribute 0x%04X: %v", cluster, attr, err)
	}
	return v
}

func TestBuildDevice(t *testing.T) {
	reg := testRegistry()
	lib := NewLibrary(testLogger())
	s := store.NewMemoryStore()

	d, err := lib.BuildDevice(lightSpec(), reg, s)
	if err != nil {
		t.Fatal(err)
	}
	ep := d.Endpoint(1)
	if ep == nil {
		t.Fatal("endpoint 1 missing")
	}
	if ep.Simple.DeviceID != 0x0101 {
		t.Errorf("device id = 0x%04X", ep.Simple.DeviceID)
	}

	level := ep.Cluster(zcl.ClusterLevelControl, zcl.RoleServer)
	if got := level.Attributes.IDs(); len(got) != 3 || got[2] != 0x0011 {
		t.Errorf("level attributes = %v", got)
	}
	if onoff := ep.Cluster(zcl.ClusterOnOff, zcl.RoleServer); onoff.ManufacturerCode != 0x1234 {
		t.Errorf("manufacturer code = 0x%04X", onoff.ManufacturerCode)
	}
	if basic := ep.Cluster(zcl.ClusterBasic, zcl.RoleServer); basic.ManufacturerCode != zcl.ManufCodeInvalid {
		t.Errorf("basic manufacturer code = 0x%04X", basic.ManufacturerCode)
	}

	if v := get(t, s, 1, zcl.ClusterOnOff, 0x0000); !bytes.Equal(v, []byte{1}) {
		t.Errorf("OnOff = % X, want 01", v)
	}
	if v := get(t, s, 1, zcl.ClusterLevelControl, 0x0011); !bytes.Equal(v, []byte{0x80}) {
		t.Errorf("OnLevel = % X, want 80", v)
	}
	if v := get(t, s, 1, zcl.ClusterLevelControl, 0x0000); !bytes.Equal(v, []byte{0xFF}) {
		t.Errorf("CurrentLevel = % X, want seeded FF", v)
	}

	slot, ok := ep.Reporting.Lookup(zcl.ClusterLevelControl, zcl.RoleServer, 0x0000)
	if !ok {
		t.Fatal("initial reporting not configured")
	}
	if slot.MinInterval != 1 || slot.MaxInterval != 60 || !bytes.Equal(slot.ReportableChange, []byte{5}) {
		t.Errorf("slot = %+v", slot)
	}

	// the built-in template is not modified by the override
	tmpl, _ := lib.Lookup("dimmable_light")
	if s, _ := tmpl.Slot(profile.ServerKey(zcl.ClusterOnOff)); s.ManufacturerCode != zcl.ManufCodeInvalid {
		t.Errorf("template manufacturer code changed to 0x%04X", s.ManufacturerCode)
	}
}

func TestBuildDeviceKeepsStoredValues(t *testing.T) {
	reg := testRegistry()
	lib := NewLibrary(testLogger())
	s := store.NewMemoryStore()
	k := store.Key{Device: "hall", Endpoint: 1, ClusterID: zcl.ClusterLevelControl, Role: zcl.RoleServer, AttrID: 0x0000}
	if err := s.PutAttribute(k, []byte{0x10}); err != nil {
		t.Fatal(err)
	}
	a, err := lib.BuildDevice(lightSpec(), reg, s)
	if err != nil {
		t.Fatal(err)
	}
	if v := get(t, s, 1, zcl.ClusterLevelControl, 0x0000); !bytes.Equal(v, []byte{0x10}) {
		t.Errorf("stored level overwritten: % X", v)
	}

	b, err := lib.BuildDevice(lightSpec(), reg, s)
	if err != nil {
		t.Fatal(err)
	}
	ea, _ := profile.EncodeSnapshot(a)
	eb, _ := profile.EncodeSnapshot(b)
	if !bytes.Equal(ea, eb) {
		t.Error("rebuilding the same image changed the snapshot")
	}
}

func TestBuildDeviceErrors(t *testing.T) {
	reg := testRegistry()
	lib := NewLibrary(testLogger())
	tests := []struct {
		name   string
		mutate func(*DeviceSpec)
		want   error
	}{
		{"unknown template", func(d *DeviceSpec) { d.Endpoints[0].Template = "toaster" }, ErrUnknownTemplate},
		{"not in manifest", func(d *DeviceSpec) {
			d.Endpoints[0].Clusters = []ClusterSpec{{Cluster: zcl.ClusterDoorLock}}
		}, profile.ErrManifest},
		{"missing required", func(d *DeviceSpec) { d.Endpoints[0].Clusters[1].Attributes = []uint16{0x0011} }, profile.ErrMissingAttribute},
		{"unknown attribute", func(d *DeviceSpec) { d.Endpoints[0].Clusters[1].Attributes = []uint16{0x0000, 0x7777} }, profile.ErrUnknownAttribute},
		{"value outside subset", func(d *DeviceSpec) { d.Endpoints[0].Clusters[1].Values = map[uint16]any{0x000F: 1} }, profile.ErrUnknownAttribute},
		{"bad value", func(d *DeviceSpec) { d.Endpoints[0].Clusters[1].Values = map[uint16]any{0x0011: 512} }, profile.ErrManifest},
		{"unreportable", func(d *DeviceSpec) {
			d.Endpoints[0].Clusters[1].Reporting = []ReportingSpec{{Attribute: 0x0011, Max: 10}}
		}, profile.ErrManifest},
		{"endpoint range", func(d *DeviceSpec) { d.Endpoints[0].Endpoint = 0 }, profile.ErrEndpointRange},
		{"duplicate endpoint", func(d *DeviceSpec) { d.Endpoints = append(d.Endpoints, d.Endpoints[0]) }, profile.ErrDuplicateEndpoint},
		{"no name", func(d *DeviceSpec) { d.Name = "" }, profile.ErrManifest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := lightSpec()
			tt.mutate(&spec)
			_, err := lib.BuildDevice(spec, reg, store.NewMemoryStore())
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if !profile.IsConfig(err) {
				t.Errorf("%v is not a configuration error", err)
			}
		})
	}

	if _, err := lib.BuildDevice(lightSpec(), reg, nil); !profile.IsFatal(err) {
		t.Errorf("nil store: got %v, want fatal", err)
	}
}

func TestDeviceSpecYAML(t *testing.T) {
	src := `
name: porch
endpoints:
  - endpoint: 4
    template: door_lock
    clusters:
      - cluster: 0x0101
        role: server
        values: {0x0002: false}
        reporting:
          - {attribute: 0x0000, min: 0, max: 300}
`
	var spec DeviceSpec
	if err := yaml.Unmarshal([]byte(src), &spec); err != nil {
		t.Fatal(err)
	}
	if len(spec.Endpoints) != 1 || spec.Endpoints[0].Clusters[0].Role != zcl.RoleServer {
		t.Fatalf("spec = %+v", spec)
	}
	s := store.NewMemoryStore()
	d, err := NewLibrary(testLogger()).BuildDevice(spec, testRegistry(), s)
	if err != nil {
		t.Fatal(err)
	}
	v, err := s.GetAttribute(store.Key{Device: "porch", Endpoint: 4, ClusterID: zcl.ClusterDoorLock, Role: zcl.RoleServer, AttrID: 0x0002})
	if err != nil || !bytes.Equal(v, []byte{0}) {
		t.Errorf("ActuatorEnabled = % X, %v", v, err)
	}
	if _, ok := d.Endpoint(4).Reporting.Lookup(zcl.ClusterDoorLock, zcl.RoleServer, 0x0000); !ok {
		t.Error("door lock reporting not configured")
	}
}
