package profile

import (
	"errors"
	"testing"

	"zigbee-ha-profile/internal/zcl"
)

func buildLight(t *testing.T, ep uint8) *EndpointDescriptor {
	t.Helper()
	tm := lightTemplate()
	e, err := Build(tm, ep, lightLists(), tm.NewReportTable(), tm.NewCVCTable())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestAssembleEndpointNilReferences(t *testing.T) {
	if _, err := AssembleEndpoint(nil, nil, 0, nil, 0, nil); !IsFatal(err) {
		t.Errorf("nil simple descriptor: got %v, want fatal", err)
	}
	sd := &SimpleDescriptor{Endpoint: 1, InClusterCount: 1, InClusters: []uint16{6}}
	if _, err := AssembleEndpoint(sd, nil, 0, nil, 0, nil); !IsFatal(err) {
		t.Errorf("nil cluster array: got %v, want fatal", err)
	}
	if _, err := AssembleEndpoint(sd, []ClusterDescriptor{}, 0, nil, 1, nil); !IsFatal(err) {
		t.Errorf("nil cvc table: got %v, want fatal", err)
	}
	if _, err := AssembleEndpoint(sd, []ClusterDescriptor{}, -1, nil, 0, nil); !errors.Is(err, ErrCapacity) {
		t.Errorf("negative capacity: got %v", err)
	}
}

func TestValidateEndpointMismatch(t *testing.T) {
	ep := buildLight(t, 1)
	if err := ValidateEndpoint(ep); err != nil {
		t.Fatalf("valid endpoint rejected: %v", err)
	}

	// swap two server clusters so the array order disagrees with the simple descriptor
	ep.Clusters[0], ep.Clusters[1] = ep.Clusters[1], ep.Clusters[0]
	if err := ValidateEndpoint(ep); !errors.Is(err, ErrClusterMismatch) {
		t.Errorf("reordered clusters: got %v", err)
	}

	ep = buildLight(t, 1)
	ep.ClusterCount = 5
	if err := ValidateEndpoint(ep); !errors.Is(err, ErrClusterCount) {
		t.Errorf("cluster count: got %v", err)
	}

	ep = buildLight(t, 1)
	ep.Simple.Endpoint = 2
	if err := ValidateEndpoint(ep); !errors.Is(err, ErrDescriptorMismatch) {
		t.Errorf("endpoint mismatch: got %v", err)
	}

	ep = buildLight(t, 1)
	ep.Clusters = append(ep.Clusters, ep.Clusters[3])
	ep.ClusterCount++
	ep.Simple.OutClusters = append(ep.Simple.OutClusters, zcl.ClusterIdentify)
	ep.Simple.OutClusterCount++
	if err := ValidateEndpoint(ep); !errors.Is(err, ErrDuplicateCluster) {
		t.Errorf("duplicate cluster: got %v", err)
	}

	ep = buildLight(t, 1)
	ep.Simple = nil
	if err := ValidateEndpoint(ep); !IsFatal(err) {
		t.Errorf("nil simple descriptor: got %v, want fatal", err)
	}
}

func TestEndpointLookup(t *testing.T) {
	ep := buildLight(t, 3)
	if c := ep.Cluster(zcl.ClusterIdentify, zcl.RoleServer); c == nil || c.IsPlaceholder() {
		t.Errorf("server identify = %+v", c)
	}
	if c := ep.Cluster(zcl.ClusterIdentify, zcl.RoleClient); c == nil || !c.IsPlaceholder() {
		t.Errorf("client identify = %+v", c)
	}
	if c := ep.Cluster(zcl.ClusterOnOff, zcl.RoleClient); c != nil {
		t.Errorf("unexpected client on/off %+v", c)
	}
	if got := ep.DeviceID(); got != 0x0100 {
		t.Errorf("device id = 0x%04X, want 0x0100", got)
	}
}
