package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zigbee-ha-profile/internal/devicedb"
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/store"
	"zigbee-ha-profile/internal/zcl"
)

const vendorYAML = `
clusters:
  - id: 0xFC00
    name: Vendor Mode
    attributes:
      - {id: 0x0000, name: Mode, type: 0x20, access: 0x07, default: 3}
templates:
  - name: vendor_sensor
    device_id: 0xFFF0
    clusters:
      - {cluster: 0x0000, role: server}
      - {cluster: 0x0003, role: server}
      - {cluster: 0xFC00, role: server, manufacturer_code: 0x1234}
`

const configYAML = `
log:
  level: debug
store:
  backend: memory
devices:
  - name: hall
    endpoints:
      - endpoint: 1
        template: dimmable_light
        clusters:
          - cluster: 0x0008
            attributes: [0x0000, 0x0011]
            values: {0x0011: 200}
            reporting:
              - {attribute: 0x0000, min: 1, max: 300, change: 10}
      - endpoint: 2
        template: vendor_sensor
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vendor.yaml"), []byte(vendorYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := parseConfig([]byte(configYAML))
	if err != nil {
		t.Fatal(err)
	}
	cfg.TemplatesDir = dir
	return cfg
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig([]byte("devices: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name, got, want string
	}{
		{"store.backend", cfg.Store.Backend, "bolt"},
		{"store.path", cfg.Store.Path, "zigbee-ha.db"},
		{"templates_dir", cfg.TemplatesDir, "templates"},
		{"web.listen", cfg.Web.Listen, "127.0.0.1:8080"},
		{"mqtt.topic_prefix", cfg.MQTT.TopicPrefix, "zigbee-ha"},
		{"log.level", cfg.Log.Level, "info"},
		{"log.format", cfg.Log.Format, "text"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestParseConfigDevices(t *testing.T) {
	cfg := testConfig(t)
	if len(cfg.Devices) != 1 || len(cfg.Devices[0].Endpoints) != 2 {
		t.Fatalf("devices = %+v", cfg.Devices)
	}
	level := cfg.Devices[0].Endpoints[0].Clusters[0]
	if level.Cluster != zcl.ClusterLevelControl || len(level.Attributes) != 2 || level.Values[0x0011] != 200 {
		t.Errorf("level cluster = %+v", level)
	}
	if len(level.Reporting) != 1 || level.Reporting[0].Max != 300 {
		t.Errorf("reporting = %+v", level.Reporting)
	}
	if cfg.Store.Path != "" {
		t.Errorf("memory backend got path %q", cfg.Store.Path)
	}
}

func TestValidate(t *testing.T) {
	device := devicedb.DeviceSpec{Name: "hall", Endpoints: []devicedb.EndpointSpec{{Endpoint: 1, Template: "door_lock"}}}
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad backend", func(c *Config) { c.Store.Backend = "sqlite" }, "store.backend"},
		{"bolt without path", func(c *Config) { c.Store.Backend = "bolt"; c.Store.Path = "" }, "store.path"},
		{"mqtt without broker", func(c *Config) { c.MQTT.Enabled = true }, "mqtt.broker"},
		{"no devices", func(c *Config) { c.Devices = nil }, "at least one device"},
		{"unnamed device", func(c *Config) { c.Devices[0].Name = "" }, "name is required"},
		{"duplicate device", func(c *Config) { c.Devices = append(c.Devices, device) }, "duplicate device"},
		{"no endpoints", func(c *Config) { c.Devices[0].Endpoints = nil }, "at least one endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Store.Backend = "memory"
			cfg.Devices = []devicedb.DeviceSpec{device}
			tt.modify(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSetup(t *testing.T) {
	cfg := testConfig(t)
	a, err := setup(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer a.store.Close()

	if _, ok := a.library.Lookup("vendor_sensor"); !ok {
		t.Error("vendor_sensor template not loaded")
	}
	if !a.registry.Has(0xFC00) {
		t.Error("vendor cluster not registered")
	}
	d, err := a.router.Device("hall")
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Endpoints) != 2 || d.Endpoint(2).Cluster(0xFC00, zcl.RoleServer).ManufacturerCode != 0x1234 {
		t.Errorf("device endpoints = %+v", d.Endpoints)
	}

	onLevel, err := a.store.GetAttribute(store.Key{Device: "hall", Endpoint: 1, ClusterID: zcl.ClusterLevelControl, Role: zcl.RoleServer, AttrID: 0x0011})
	if err != nil || !bytes.Equal(onLevel, []byte{200}) {
		t.Errorf("OnLevel = %x, %v, want c8", onLevel, err)
	}

	rec, err := a.store.GetSnapshot("hall")
	if err != nil {
		t.Fatal(err)
	}
	encoded, _ := profile.EncodeSnapshot(d)
	if rec.Fingerprint != profile.Fingerprint(encoded) || rec.Handle != d.Handle.String() {
		t.Errorf("snapshot record = %+v", rec)
	}
}

func TestSetupUnknownTemplate(t *testing.T) {
	cfg := testConfig(t)
	cfg.Devices[0].Endpoints[1].Template = "toaster"
	if _, err := setup(context.Background(), cfg, testLogger()); err == nil || !profile.IsConfig(err) {
		t.Errorf("error = %v, want configuration error", err)
	}
}

func TestSetupKeepsUnchangedSnapshot(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Backend = "bolt"
	cfg.Store.Path = filepath.Join(t.TempDir(), "test.db")

	a, err := setup(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	first, err := a.store.GetSnapshot("hall")
	if err != nil {
		t.Fatal(err)
	}
	a.store.Close()

	a, err = setup(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer a.store.Close()
	second, err := a.store.GetSnapshot("hall")
	if err != nil {
		t.Fatal(err)
	}
	if second.Fingerprint != first.Fingerprint || !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Errorf("snapshot rewritten: %s at %v, was %s at %v", second.Fingerprint, second.UpdatedAt, first.Fingerprint, first.UpdatedAt)
	}
}

func TestRunTransitions(t *testing.T) {
	a, err := setup(context.Background(), testConfig(t), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer a.store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.runTransitions(ctx, time.Millisecond)
	}()

	// Move to Level 0x10 over one second, no default response.
	if _, err := a.router.Handle(1, zcl.ClusterLevelControl, []byte{0x11, 0x01, 0x00, 0x10, 0x0A, 0x00}); err != nil {
		t.Fatal(err)
	}

	key := store.Key{Device: "hall", Endpoint: 1, ClusterID: zcl.ClusterLevelControl, Role: zcl.RoleServer, AttrID: 0x0000}
	deadline := time.Now().Add(2 * time.Second)
	for {
		v, _ := a.store.GetAttribute(key)
		if bytes.Equal(v, []byte{0x10}) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("CurrentLevel = %x, want 10", v)
		}
		time.Sleep(2 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("runTransitions did not stop")
	}
}

type recordStop struct {
	name  string
	order *[]string
}

func (r recordStop) Stop() { *r.order = append(*r.order, r.name) }

func TestStopSurfaces(t *testing.T) {
	a := &app{logger: testLogger()}
	var order []string
	a.addSurface("web", recordStop{"web", &order})
	a.addSurface("mqtt", recordStop{"mqtt", &order})
	a.stopSurfaces()
	if len(order) != 2 || order[0] != "mqtt" || order[1] != "web" {
		t.Errorf("stop order = %v, want [mqtt web]", order)
	}
	if len(a.surfaces) != 0 {
		t.Errorf("surfaces left after stop: %d", len(a.surfaces))
	}
	a.stopSurfaces()
	if len(order) != 2 {
		t.Errorf("second stop ran surfaces again: %v", order)
	}
}

func TestStartMQTTDisabled(t *testing.T) {
	a, err := setup(context.Background(), testConfig(t), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer a.store.Close()
	if err := a.startMQTT(&Config{}); err != nil {
		t.Fatalf("disabled mqtt: %v", err)
	}
	if len(a.surfaces) != 0 {
		t.Errorf("disabled mqtt added %d surfaces", len(a.surfaces))
	}
}
