package profile

import (
	"errors"
	"slices"

	"zigbee-ha-profile/internal/zcl"
)

// ValidateEndpoint checks every structural invariant of an endpoint and
// returns all violations joined.
func ValidateEndpoint(ep *EndpointDescriptor) error {
	if ep == nil {
		return fatalError(ErrNilReference, "endpoint descriptor")
	}
	var errs []error
	if !validEndpoint(ep.ID) {
		errs = append(errs, configError(ErrEndpointRange, "endpoint %d", ep.ID))
	}

	s := ep.Simple
	if s == nil {
		errs = append(errs, fatalError(ErrNilReference, "endpoint %d simple descriptor", ep.ID))
	} else {
		if s.Endpoint != ep.ID {
			errs = append(errs, configError(ErrDescriptorMismatch, "endpoint %d, simple descriptor says %d", ep.ID, s.Endpoint))
		}
		if s.ProfileID != ep.ProfileID {
			errs = append(errs, configError(ErrDescriptorMismatch, "endpoint %d profile 0x%04X, simple descriptor 0x%04X", ep.ID, ep.ProfileID, s.ProfileID))
		}
		if s.InClusterCount != len(s.InClusters) || s.OutClusterCount != len(s.OutClusters) {
			errs = append(errs, configError(ErrClusterCount, "endpoint %d simple descriptor counts %d/%d, lists %d/%d",
				ep.ID, s.InClusterCount, s.OutClusterCount, len(s.InClusters), len(s.OutClusters)))
		}
	}

	if ep.ClusterCount > 0 && ep.Clusters == nil {
		errs = append(errs, fatalError(ErrNilReference, "endpoint %d cluster array, %d declared", ep.ID, ep.ClusterCount))
	} else if ep.ClusterCount != len(ep.Clusters) {
		errs = append(errs, configError(ErrClusterCount, "endpoint %d declares %d clusters, array has %d", ep.ID, ep.ClusterCount, len(ep.Clusters)))
	}

	seen := make(map[ClusterKey]bool, len(ep.Clusters))
	for i := range ep.Clusters {
		c := &ep.Clusters[i]
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
		}
		if seen[c.Key()] {
			errs = append(errs, configError(ErrDuplicateCluster, "endpoint %d cluster %s", ep.ID, c.Key()))
		}
		seen[c.Key()] = true
	}

	if s != nil {
		if in := ep.ClusterIDs(zcl.RoleServer); !slices.Equal(in, s.InClusters) {
			errs = append(errs, configError(ErrClusterMismatch, "endpoint %d input clusters %04X, simple descriptor %04X", ep.ID, in, s.InClusters))
		}
		if out := ep.ClusterIDs(zcl.RoleClient); !slices.Equal(out, s.OutClusters) {
			errs = append(errs, configError(ErrClusterMismatch, "endpoint %d output clusters %04X, simple descriptor %04X", ep.ID, out, s.OutClusters))
		}
	}

	if err := checkCapacity("reporting", ep.ID, ep.ReportAttrCount, ep.Reporting.Count(), ep.Reporting == nil || ep.Reporting.table == nil); err != nil {
		errs = append(errs, err)
	}
	if err := checkCapacity("cvc", ep.ID, ep.CVCAttrCount, ep.CVC.Count(), ep.CVC == nil || ep.CVC.table == nil); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateDevice checks endpoint uniqueness and every endpoint.
func ValidateDevice(d *DeviceContext) error {
	if d == nil {
		return fatalError(ErrNilReference, "device context")
	}
	var errs []error
	seen := make(map[uint8]bool, len(d.Endpoints))
	for i, ep := range d.Endpoints {
		if ep == nil {
			errs = append(errs, fatalError(ErrNilReference, "device %q endpoint %d", d.Name, i))
			continue
		}
		if seen[ep.ID] {
			errs = append(errs, configError(ErrDuplicateEndpoint, "device %q endpoint %d", d.Name, ep.ID))
		}
		seen[ep.ID] = true
		if err := ValidateEndpoint(ep); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
