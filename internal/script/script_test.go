//go:build !no_lua

package script

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zigbee-ha-profile/internal/devicedb"
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const vendorLua = `
local mode = zcl.cluster{
  id = 0xFC01,
  name = "Vendor Mode",
  revision = 2,
  attributes = {
    { id = 0x0000, name = "Mode", type = "uint8", access = "rwp", default = 3 },
    { id = 0x0001, name = "Label", type = zcl.type("string") },
    { id = 0x0002, name = "Flags", type = 0x18, access = zcl.access.read + zcl.access.write },
  },
  commands = {
    { id = 0x00, name = "Apply" },
    { id = 0x01, name = "Applied", direction = "toClient" },
  },
}

ha.template{
  name = "vendor_light",
  device_id = ha.devices.dimmable_light,
  device_version = 1,
  clusters = {
    ha.server(0x0003, { 0x0000 }),
    ha.server(0x0000, { 0x0000, 0x0007 }),
    ha.server(mode),
    ha.placeholder(0x0009),
    ha.client(0x0019),
  },
  cvc_attr_count = 1,
}
`

func TestEval(t *testing.T) {
	f, err := NewLoader(testLogger()).Eval(context.Background(), "vendor.lua", vendorLua)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Clusters) != 1 {
		t.Fatalf("clusters = %d, want 1", len(f.Clusters))
	}
	c := f.Clusters[0]
	if c.ID != 0xFC01 || c.Revision != 2 || len(c.Attributes) != 3 || len(c.Commands) != 2 {
		t.Errorf("cluster = %+v", c)
	}
	mode := c.FindAttribute(0x0000)
	if mode.Type != zcl.TypeUint8 || mode.Access != zcl.AccessReadWrite|zcl.AccessReport || mode.Default != int64(3) {
		t.Errorf("Mode = %+v", mode)
	}
	if label := c.FindAttribute(0x0001); label.Type != zcl.TypeCharStr || label.Access != zcl.AccessRead {
		t.Errorf("Label = %+v", label)
	}
	if flags := c.FindAttribute(0x0002); flags.Access != zcl.AccessReadWrite {
		t.Errorf("Flags access = 0x%02X", flags.Access)
	}
	if c.FindCommand(0x01, zcl.DirectionToClient) == nil {
		t.Error("toClient command missing")
	}

	if len(f.Templates) != 1 {
		t.Fatalf("templates = %d, want 1", len(f.Templates))
	}
	d := f.Templates[0]
	if d.Name != "vendor_light" || d.DeviceID != 0x0101 || d.DeviceVersion != 1 || d.CVCAttrCount != 1 || d.ReportAttrCount != nil {
		t.Errorf("template = %+v", d)
	}
	if len(d.Clusters) != 5 {
		t.Fatalf("slots = %d, want 5", len(d.Clusters))
	}
	if s := d.Clusters[3]; s.Role != zcl.RoleServer || s.Storage == nil || *s.Storage {
		t.Errorf("placeholder slot = %+v", s)
	}
	if s := d.Clusters[4]; s.Role != zcl.RoleClient || s.Storage == nil || *s.Storage {
		t.Errorf("client slot = %+v", s)
	}
	if s := d.Clusters[1]; len(s.Required) != 2 || s.Required[1] != 0x0007 {
		t.Errorf("basic required = %v", s.Required)
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"syntax", `ha.template{`, ""},
		{"missing name", `zcl.cluster{ id = 1 }`, `"name"`},
		{"id range", `zcl.cluster{ id = 70000, name = "x" }`, `"id"`},
		{"fraction", `zcl.cluster{ id = 1.5, name = "x" }`, `"id"`},
		{"type name", `zcl.cluster{ id = 1, name = "x", attributes = {{ id = 0, name = "a", type = "quaternion" }} }`, "quaternion"},
		{"access flag", `zcl.cluster{ id = 1, name = "x", attributes = {{ id = 0, name = "a", type = "bool", access = "rx" }} }`, "access"},
		{"placeholder required", `ha.placeholder(3, { 0 })`, "storage"},
		{"bad role", `ha.template{ name = "x", device_id = 1, clusters = {{ cluster = 3, role = "both" }} }`, "role"},
		{"no io", `io.open("/etc/passwd")`, ""},
		{"no require", `require("os")`, ""},
	}
	l := NewLoader(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Eval(context.Background(), "bad.lua", tt.code)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestEvalTimeout(t *testing.T) {
	l := NewLoader(testLogger())
	l.timeout = 50 * time.Millisecond
	start := time.Now()
	if _, err := l.Eval(context.Background(), "loop.lua", `while true do end`); err == nil {
		t.Fatal("endless script returned no error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
}

func TestLoadDir(t *testing.T) {
	logger := testLogger()
	reg := zcl.NewRegistry(logger)
	clusters.RegisterStandard(reg)
	lib := devicedb.NewLibrary(logger)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vendor.lua"), []byte(vendorLua), 0o644); err != nil {
		t.Fatal(err)
	}
	n, err := NewLoader(logger).LoadDir(context.Background(), dir, lib, reg)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("added %d, want 1", n)
	}
	if reg.Get(0xFC01) == nil {
		t.Error("cluster not registered")
	}
	tmpl, ok := lib.Lookup("vendor_light")
	if !ok {
		t.Fatal("template not added")
	}
	if tmpl.InClusterNum != 4 || tmpl.OutClusterNum != 1 || tmpl.ReportAttrCount != 1 {
		t.Errorf("template = %v, report %d", tmpl, tmpl.ReportAttrCount)
	}
	if s, _ := tmpl.Slot(profile.ServerKey(zcl.ClusterAlarms)); s.Storage {
		t.Error("placeholder slot has storage")
	}

	if _, err := NewLoader(logger).LoadDir(context.Background(), dir, lib, reg); !errors.Is(err, devicedb.ErrDuplicateTemplate) {
		t.Errorf("reload: got %v, want ErrDuplicateTemplate", err)
	}
}
