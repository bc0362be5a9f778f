package profile

import (
	"errors"
	"slices"
	"testing"

	"zigbee-ha-profile/internal/zcl"
)

func TestTemplateValidate(t *testing.T) {
	if err := lightTemplate().Validate(); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Template)
		cause  error
	}{
		{"in count", func(tm *Template) { tm.InClusterNum = 4 }, ErrClusterCount},
		{"out count", func(tm *Template) { tm.OutClusterNum = 2 }, ErrClusterCount},
		{"duplicate slot", func(tm *Template) { tm.Manifest[1] = Server(zcl.ClusterIdentify) }, ErrDuplicateCluster},
		{"bad role", func(tm *Template) { tm.Manifest[3].Role = 0 }, ErrInvalidRole},
		{"required on placeholder", func(tm *Template) {
			tm.Manifest[2] = Placeholder(zcl.ClusterOnOff)
			tm.Manifest[2].Required = []uint16{0}
		}, ErrManifest},
		{"device version", func(tm *Template) { tm.DeviceVersion = 0x10 }, ErrManifest},
		{"no name", func(tm *Template) { tm.Name = "" }, ErrManifest},
		{"negative capacity", func(tm *Template) { tm.ReportAttrCount = -1 }, ErrCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := lightTemplate()
			tt.mutate(tm)
			err := tm.Validate()
			if !errors.Is(err, tt.cause) {
				t.Errorf("got %v, want %v", err, tt.cause)
			}
			if !IsConfig(err) {
				t.Errorf("got %v, want a configuration error", err)
			}
		})
	}
}

func TestTemplateNilIsFatal(t *testing.T) {
	var tm *Template
	if err := tm.Validate(); !IsFatal(err) {
		t.Errorf("got %v, want fatal", err)
	}
}

func TestTemplateClusterLists(t *testing.T) {
	tm := lightTemplate()
	if got, want := tm.InputClusters(), []uint16{zcl.ClusterIdentify, zcl.ClusterBasic, zcl.ClusterOnOff}; !slices.Equal(got, want) {
		t.Errorf("in = %04X, want %04X", got, want)
	}
	if got, want := tm.OutputClusters(), []uint16{zcl.ClusterIdentify}; !slices.Equal(got, want) {
		t.Errorf("out = %04X, want %04X", got, want)
	}
	keys := tm.StorageKeys()
	if len(keys) != 3 || slices.Contains(keys, ClientKey(zcl.ClusterIdentify)) {
		t.Errorf("storage keys = %v", keys)
	}
	if _, ok := tm.Slot(ClientKey(zcl.ClusterIdentify)); !ok {
		t.Error("client identify slot not found")
	}
	if _, ok := tm.Slot(ClientKey(zcl.ClusterOnOff)); ok {
		t.Error("found a slot that is not in the manifest")
	}
}

func TestTemplateTables(t *testing.T) {
	tm := lightTemplate()
	if got := len(tm.NewReportTable()); got != 1 {
		t.Errorf("report table len = %d, want 1", got)
	}
	if tm.NewCVCTable() != nil {
		t.Error("cvc table should be nil for zero capacity")
	}
}
