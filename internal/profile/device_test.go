package profile

import (
	"errors"
	"testing"

	"zigbee-ha-profile/internal/zcl"
)

type recordingFramework struct {
	devices []*DeviceContext
	err     error
}

func (f *recordingFramework) RegisterDevice(d *DeviceContext) error {
	if f.err != nil {
		return f.err
	}
	f.devices = append(f.devices, d)
	return nil
}

func TestNewDeviceContext(t *testing.T) {
	a, b := buildLight(t, 1), buildLight(t, 2)
	d, err := NewDeviceContext("hall", a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Endpoints) != 2 || d.Endpoint(2) != b || d.Endpoint(9) != nil {
		t.Errorf("endpoints = %v", d.Endpoints)
	}
	again, _ := NewDeviceContext("hall", buildLight(t, 1))
	if again.Handle != d.Handle {
		t.Errorf("handle not stable: %s vs %s", again.Handle, d.Handle)
	}
	other, _ := NewDeviceContext("kitchen")
	if other.Handle == d.Handle {
		t.Error("different names share a handle")
	}
}

func TestNewDeviceContextErrors(t *testing.T) {
	if _, err := NewDeviceContext("x", buildLight(t, 1), buildLight(t, 1)); !errors.Is(err, ErrDuplicateEndpoint) {
		t.Errorf("duplicate endpoint: got %v", err)
	}
	if _, err := NewDeviceContext("x", nil); !IsFatal(err) {
		t.Errorf("nil endpoint: got %v, want fatal", err)
	}
}

func TestRoute(t *testing.T) {
	d, err := NewDeviceContext("hall", buildLight(t, 1))
	if err != nil {
		t.Fatal(err)
	}
	tgt, err := d.Route(1, zcl.ClusterOnOff, zcl.RoleServer, 0x0000)
	if err != nil {
		t.Fatal(err)
	}
	if tgt.Attribute == nil || tgt.Attribute.Type != zcl.TypeBool {
		t.Errorf("attribute = %+v", tgt.Attribute)
	}

	tests := []struct {
		name    string
		ep      uint8
		cluster uint16
		role    zcl.Role
		attr    uint16
		want    error
	}{
		{"no endpoint", 7, zcl.ClusterOnOff, zcl.RoleServer, 0, ErrNoEndpoint},
		{"no cluster", 1, zcl.ClusterDoorLock, zcl.RoleServer, 0, ErrNoCluster},
		{"wrong role", 1, zcl.ClusterOnOff, zcl.RoleClient, 0, ErrNoCluster},
		{"no attribute", 1, zcl.ClusterOnOff, zcl.RoleServer, 0x0101, ErrNoAttribute},
		{"placeholder has none", 1, zcl.ClusterIdentify, zcl.RoleClient, 0, ErrNoAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Route(tt.ep, tt.cluster, tt.role, tt.attr)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	fw := &recordingFramework{}
	d, _ := NewDeviceContext("hall", buildLight(t, 1))
	if err := Register(fw, d); err != nil {
		t.Fatal(err)
	}
	if len(fw.devices) != 1 {
		t.Fatalf("framework saw %d devices, want 1", len(fw.devices))
	}

	broken, _ := NewDeviceContext("broken", buildLight(t, 1))
	broken.Endpoints[0].ClusterCount = 9
	if err := Register(fw, broken); !IsConfig(err) {
		t.Errorf("invalid device: got %v", err)
	}
	if len(fw.devices) != 1 {
		t.Error("invalid device reached the framework")
	}

	if err := Register(nil, d); !IsFatal(err) {
		t.Errorf("nil framework: got %v", err)
	}
	if err := Register(fw, nil); !IsFatal(err) {
		t.Errorf("nil device: got %v", err)
	}

	fw.err = errors.New("busy")
	if err := Register(fw, d); err == nil || err.Error() != "busy" {
		t.Errorf("framework error: got %v", err)
	}
}
