package profile

import "zigbee-ha-profile/internal/zcl"

// EndpointDescriptor binds a simple descriptor, a cluster array and the
// reporting and CVC contexts to one endpoint number.
type EndpointDescriptor struct {
	ID              uint8
	ProfileID       uint16
	Simple          *SimpleDescriptor
	ClusterCount    int
	Clusters        []ClusterDescriptor
	ReportAttrCount int
	Reporting       *ReportingContext
	CVCAttrCount    int
	CVC             *CVCContext
}

// AssembleEndpoint combines the built pieces into an endpoint descriptor.
// reportCount and cvcCount are the capacities the device type declares;
// (0, nil) for either is a complete configuration.
func AssembleEndpoint(simple *SimpleDescriptor, clusters []ClusterDescriptor,
	reportCount int, reportTable []ReportSlot, cvcCount int, cvcTable []CVCSlot) (*EndpointDescriptor, error) {
	if simple == nil {
		return nil, fatalError(ErrNilReference, "simple descriptor")
	}
	if clusters == nil && simple.InClusterCount+simple.OutClusterCount > 0 {
		return nil, fatalError(ErrNilReference, "endpoint %d cluster array", simple.Endpoint)
	}
	if err := checkCapacity("reporting", simple.Endpoint, reportCount, len(reportTable), reportTable == nil); err != nil {
		return nil, err
	}
	if err := checkCapacity("cvc", simple.Endpoint, cvcCount, len(cvcTable), cvcTable == nil); err != nil {
		return nil, err
	}
	return &EndpointDescriptor{
		ID:              simple.Endpoint,
		ProfileID:       simple.ProfileID,
		Simple:          simple,
		ClusterCount:    len(clusters),
		Clusters:        clusters,
		ReportAttrCount: reportCount,
		Reporting:       NewReportingContext(reportTable),
		CVCAttrCount:    cvcCount,
		CVC:             NewCVCContext(cvcTable),
	}, nil
}

func checkCapacity(what string, ep uint8, declared, size int, isNil bool) error {
	switch {
	case declared < 0:
		return configError(ErrCapacity, "endpoint %d %s count %d", ep, what, declared)
	case declared > 0 && isNil:
		return fatalError(ErrNilReference, "endpoint %d %s table is nil, %d slots declared", ep, what, declared)
	case declared != size:
		return configError(ErrCapacity, "endpoint %d %s table has %d slots, %d declared", ep, what, size, declared)
	}
	return nil
}

// Cluster returns the cluster instance for (id, role), or nil.
func (e *EndpointDescriptor) Cluster(id uint16, role zcl.Role) *ClusterDescriptor {
	for i := range e.Clusters {
		if e.Clusters[i].ClusterID == id && e.Clusters[i].Role == role {
			return &e.Clusters[i]
		}
	}
	return nil
}

// ClusterIDs returns the cluster IDs of one role in array order.
func (e *EndpointDescriptor) ClusterIDs(role zcl.Role) []uint16 {
	var ids []uint16
	for _, c := range e.Clusters {
		if c.Role == role {
			ids = append(ids, c.ClusterID)
		}
	}
	return ids
}

// DeviceID returns the device ID from the simple descriptor.
func (e *EndpointDescriptor) DeviceID() uint16 {
	if e.Simple == nil {
		return 0
	}
	return e.Simple.DeviceID
}
