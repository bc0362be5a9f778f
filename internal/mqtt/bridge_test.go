//go:build !no_mqtt

package mqtt

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"zigbee-ha-profile/internal/devicedb"
	"zigbee-ha-profile/internal/dispatch"
	"zigbee-ha-profile/internal/events"
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/store"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

func testBridge(t *testing.T) (*Bridge, *profile.DeviceContext) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := zcl.NewRegistry(logger)
	clusters.RegisterStandard(reg)
	d, err := devicedb.NewLibrary(logger).BuildDevice(devicedb.DeviceSpec{
		Name: "porch",
		Endpoints: []devicedb.EndpointSpec{
			{Endpoint: 1, Template: "door_lock"},
			{Endpoint: 2, Template: "on_off_output"},
		},
	}, reg, store.NewMemoryStore())
	if err != nil {
		t.Fatal(err)
	}
	bus := events.NewBus(logger)
	r := dispatch.NewRouter(logger, bus, reg)
	if err := profile.Register(r, d); err != nil {
		t.Fatal(err)
	}
	return &Bridge{router: r, bus: bus, prefix: "zigbee-ha", logger: logger}, d
}

func TestDeviceMessages(t *testing.T) {
	_, d := testBridge(t)
	msgs, err := deviceMessages("zigbee-ha", d)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	wantTopics := []string{"zigbee-ha/devices/porch", "zigbee-ha/devices/porch/1", "zigbee-ha/devices/porch/2"}
	for i, m := range msgs {
		if m.Topic != wantTopics[i] {
			t.Errorf("topic[%d] = %q, want %q", i, m.Topic, wantTopics[i])
		}
		if !m.Retained {
			t.Errorf("%s not retained", m.Topic)
		}
	}

	var dp devicePayload
	if err := json.Unmarshal(msgs[0].Payload, &dp); err != nil {
		t.Fatal(err)
	}
	encoded, _ := profile.EncodeSnapshot(d)
	if dp.Handle != d.Handle.String() || dp.Fingerprint != profile.Fingerprint(encoded) || len(dp.Endpoints) != 2 {
		t.Errorf("device payload = %+v", dp)
	}

	var ep endpointPayload
	if err := json.Unmarshal(msgs[1].Payload, &ep); err != nil {
		t.Fatal(err)
	}
	if ep.Device != "porch" || ep.Endpoint != 1 || ep.DeviceID != 0x000A || len(ep.InClusters) != 5 {
		t.Errorf("endpoint payload = %+v", ep)
	}
	simple, _ := d.Endpoint(1).Simple.MarshalBinary()
	if ep.SimpleDescriptor != hex.EncodeToString(simple) {
		t.Errorf("simple descriptor = %s", ep.SimpleDescriptor)
	}
	if ep.Clusters[0].Role != zcl.RoleServer {
		t.Errorf("first cluster role = %v", ep.Clusters[0].Role)
	}
}

func TestReportMessage(t *testing.T) {
	m := reportMessage("zigbee-ha", events.AttributeChange{
		Device: "porch", Endpoint: 1, ClusterID: zcl.ClusterDoorLock, Role: zcl.RoleServer,
		AttrID: 0x0000, Type: zcl.TypeEnum8, Value: []byte{0x01},
	})
	if m.Topic != "zigbee-ha/devices/porch/1/report" || m.Retained {
		t.Errorf("message = %+v", m)
	}
	var rp map[string]any
	if err := json.Unmarshal(m.Payload, &rp); err != nil {
		t.Fatal(err)
	}
	if rp["cluster"] != float64(0x0101) || rp["type"] != "enum8" || rp["raw"] != "01" || rp["value"] != float64(1) || rp["role"] != "server" {
		t.Errorf("payload = %v", rp)
	}
}

func TestParseFrameTopic(t *testing.T) {
	tests := []struct {
		topic string
		name  string
		ep    uint8
		ok    bool
	}{
		{"zigbee-ha/devices/porch/1/zcl", "porch", 1, true},
		{"zigbee-ha/devices/porch/240/zcl", "porch", 240, true},
		{"zigbee-ha/devices/porch/1/zcl/response", "", 0, false},
		{"zigbee-ha/devices/porch/300/zcl", "", 0, false},
		{"other/devices/porch/1/zcl", "", 0, false},
		{"zigbee-ha/devices//1/zcl", "", 0, false},
	}
	for _, tt := range tests {
		name, ep, ok := parseFrameTopic("zigbee-ha", tt.topic)
		if name != tt.name || ep != tt.ep || ok != tt.ok {
			t.Errorf("%s: got (%q, %d, %v), want (%q, %d, %v)", tt.topic, name, ep, ok, tt.name, tt.ep, tt.ok)
		}
	}
}

func TestHandleFrame(t *testing.T) {
	b, _ := testBridge(t)
	topic := "zigbee-ha/devices/porch/2/zcl"

	// Read OnOff from the output endpoint.
	m, ok := b.handleFrame(topic, []byte(`{"cluster": 6, "frame": "00070000 00"}`))
	if !ok {
		t.Fatal("no reply")
	}
	var fm frameMessage
	json.Unmarshal(m.Payload, &fm)
	if fm.Error == "" {
		t.Errorf("bad hex accepted: %+v", fm)
	}

	m, ok = b.handleFrame(topic, []byte(`{"cluster": 6, "frame": "0007000000"}`))
	if !ok {
		t.Fatal("no reply")
	}
	if m.Topic != topic+"/response" {
		t.Errorf("topic = %q", m.Topic)
	}
	fm = frameMessage{}
	if err := json.Unmarshal(m.Payload, &fm); err != nil {
		t.Fatal(err)
	}
	if fm.Frame != "18070100000010"+"00" {
		t.Errorf("frame = %s, error %q", fm.Frame, fm.Error)
	}

	// endpoint 1 belongs to porch but the request topic names another device
	m, _ = b.handleFrame("zigbee-ha/devices/attic/1/zcl", []byte(`{"cluster": 6, "frame": "0007000000"}`))
	fm = frameMessage{}
	json.Unmarshal(m.Payload, &fm)
	if fm.Error == "" {
		t.Error("frame for unknown device served")
	}

	// suppressed default response produces no reply
	if _, ok := b.handleFrame(topic, []byte(`{"cluster": 6, "frame": "110801"}`)); ok {
		t.Error("reply sent for suppressed default response")
	}

	if _, ok := b.handleFrame("zigbee-ha/devices/porch/2/state", []byte(`{}`)); ok {
		t.Error("reply for non-frame topic")
	}
}
