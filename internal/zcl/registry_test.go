package zcl

import (
	"log/slog"
	"os"
	"testing"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	r := NewRegistry(logger)

	c := ClusterDef{
		ID:   ClusterOnOff,
		Name: "On/Off",
		Attributes: []AttributeDef{
			{ID: 0, Name: "OnOff", Type: TypeBool, Access: AccessRead | AccessReport | AccessScene},
		},
	}
	r.Register(c)

	if !r.Has(ClusterOnOff) || r.Has(ClusterDoorLock) || r.Len() != 1 {
		t.Fatalf("Has/Len after one Register: len = %d", r.Len())
	}
	got := r.Get(ClusterOnOff)
	if got == nil {
		t.Fatal("cluster not found")
	}
	if got.Name != "On/Off" {
		t.Errorf("name = %q, want %q", got.Name, "On/Off")
	}
	if len(got.Attributes) != 1 {
		t.Errorf("attrs = %d, want 1", len(got.Attributes))
	}

	got.Attributes[0].Name = "mutated"
	if again := r.Get(ClusterOnOff); again.Attributes[0].Name != "OnOff" {
		t.Errorf("registry entry mutated through Get copy: %q", again.Attributes[0].Name)
	}

	c.Attributes[0].Name = "caller"
	if again := r.Get(ClusterOnOff); again.Attributes[0].Name != "OnOff" {
		t.Errorf("registry entry aliases caller slice: %q", again.Attributes[0].Name)
	}
}

func TestRegistryMerge(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	r := NewRegistry(logger)

	r.Register(ClusterDef{
		ID:   ClusterOnOff,
		Name: "On/Off",
		Attributes: []AttributeDef{
			{ID: 0, Name: "OnOff", Type: TypeBool, Access: AccessRead},
		},
	})

	// Overlay from a template file
	r.Register(ClusterDef{
		ID:       ClusterOnOff,
		Revision: 2,
		Attributes: []AttributeDef{
			{ID: 0x4003, Name: "StartUpOnOff", Type: TypeEnum8, Access: AccessReadWrite},
		},
	})

	got := r.Get(ClusterOnOff)
	if len(got.Attributes) != 2 {
		t.Errorf("after merge: attrs = %d, want 2", len(got.Attributes))
	}
	if got.Revision != 2 {
		t.Errorf("revision = %d, want 2", got.Revision)
	}

	attr, ok := r.Attribute(ClusterOnOff, 0x4003)
	if !ok {
		t.Fatal("merged attribute not found")
	}
	if attr.Name != "StartUpOnOff" {
		t.Errorf("name = %q, want StartUpOnOff", attr.Name)
	}
	if _, ok := r.Attribute(ClusterDoorLock, 0); ok {
		t.Error("attribute of unregistered cluster should not be found")
	}
}

func TestRegistryAllOrdered(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	r := NewRegistry(logger)

	r.Register(ClusterDef{ID: 3, Name: "C"})
	r.Register(ClusterDef{ID: 1, Name: "A"})
	r.Register(ClusterDef{ID: 2, Name: "B"})

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("got %d clusters, want 3", len(all))
	}
	for i, want := range []string{"A", "B", "C"} {
		if all[i].Name != want {
			t.Errorf("All()[%d] = %q, want %q", i, all[i].Name, want)
		}
	}
}

func TestReportableCount(t *testing.T) {
	c := ClusterDef{
		ID: ClusterDoorLock,
		Attributes: []AttributeDef{
			{ID: 0x0000, Type: TypeEnum8, Access: AccessRead | AccessReport},
			{ID: 0x0001, Type: TypeEnum8, Access: AccessRead},
			{ID: 0x0003, Type: TypeEnum8, Access: AccessRead | AccessReport | AccessScene},
		},
	}
	if got := c.ReportableCount(); got != 2 {
		t.Errorf("ReportableCount() = %d, want 2", got)
	}
	if got := c.ReportableCount(0x0000, 0x0001); got != 1 {
		t.Errorf("ReportableCount(0,1) = %d, want 1", got)
	}
	if got := c.SceneCount(); got != 1 {
		t.Errorf("SceneCount() = %d, want 1", got)
	}
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{"server": RoleServer, "s": RoleServer, "client": RoleClient, "out": RoleClient} {
		got, err := ParseRole(in)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseRole(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseRole("both"); err == nil {
		t.Error("expected error for unknown role")
	}
	if RoleClient.String() != "client" || Role(9).String() != "role(9)" {
		t.Errorf("unexpected role strings %q %q", RoleClient, Role(9))
	}
}

func TestRoleText(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleServer, "server"},
		{RoleClient, "client"},
		{Role(0), "role(0)"},
	}
	for _, tt := range tests {
		got, err := tt.role.MarshalText()
		if err != nil || string(got) != tt.want {
			t.Errorf("MarshalText(%d) = %q, %v, want %q", uint8(tt.role), got, err, tt.want)
		}
	}

	var r Role
	if err := r.UnmarshalText([]byte("role(0)")); err == nil {
		t.Error("UnmarshalText accepted an out-of-range role")
	}
	if err := r.UnmarshalText([]byte("client")); err != nil || r != RoleClient {
		t.Errorf("UnmarshalText(client) = %v, %v", r, err)
	}
}
