package profile

import (
	"errors"
	"testing"

	"zigbee-ha-profile/internal/zcl"
)

func TestDeclareAttributes(t *testing.T) {
	all, err := DeclareAttributes(&testOnOff, cellBinder)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != 0x0000 || all[1].ID != 0x4001 {
		t.Errorf("declared %v", all)
	}
	if all.ReportableCount() != 1 {
		t.Errorf("reportable = %d, want 1", all.ReportableCount())
	}

	sub, err := DeclareAttributes(&testOnOff, cellBinder, 0x4001)
	if err != nil {
		t.Fatal(err)
	}
	if len(sub) != 1 || sub[0].Type != zcl.TypeUint16 || !sub[0].Writable() {
		t.Errorf("subset %v", sub)
	}

	if _, err := DeclareAttributes(&testOnOff, cellBinder, 0x1234); !errors.Is(err, ErrUnknownAttribute) {
		t.Errorf("unknown attribute: got %v", err)
	}
	if _, err := DeclareAttributes(&testOnOff, cellBinder, 0x0000, 0x0000); !errors.Is(err, ErrDuplicateAttribute) {
		t.Errorf("duplicate attribute: got %v", err)
	}
	if _, err := DeclareAttributes(nil, cellBinder); !IsFatal(err) {
		t.Errorf("nil definition: got %v", err)
	}
}

func TestClusterDescriptorValidate(t *testing.T) {
	good := NewClusterDescriptor(zcl.ClusterOnOff, zcl.RoleServer, zcl.ManufCodeInvalid, mustDeclare(testOnOff))
	if err := good.Validate(); err != nil {
		t.Fatalf("valid descriptor rejected: %v", err)
	}
	placeholder := NewClusterDescriptor(zcl.ClusterIdentify, zcl.RoleClient, zcl.ManufCodeInvalid, nil)
	if err := placeholder.Validate(); err != nil {
		t.Errorf("placeholder rejected: %v", err)
	}

	tests := []struct {
		name  string
		cd    ClusterDescriptor
		cause error
		fatal bool
	}{
		{"count mismatch", func() ClusterDescriptor { c := good; c.AttributeCount = 3; return c }(), ErrAttributeCount, false},
		{"count with nil list", ClusterDescriptor{ClusterID: 6, Role: zcl.RoleServer, AttributeCount: 2}, ErrNilReference, true},
		{"bad role", ClusterDescriptor{ClusterID: 6}, ErrInvalidRole, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cd.Validate()
			if !errors.Is(err, tt.cause) {
				t.Errorf("got %v, want %v", err, tt.cause)
			}
			if IsFatal(err) != tt.fatal {
				t.Errorf("fatal = %v, want %v", IsFatal(err), tt.fatal)
			}
		})
	}
}

func TestClusterDescriptorManufacturer(t *testing.T) {
	cd := NewClusterDescriptor(0xFC00, zcl.RoleServer, 0x1234, AttributeList{})
	if !cd.ManufacturerSpecific() {
		t.Error("manufacturer code 0x1234 not reported as manufacturer specific")
	}
	if cd.IsPlaceholder() {
		t.Error("empty non-nil list treated as placeholder")
	}
}
