package profile

import (
	"errors"
	"slices"
)

// AttributeLists supplies the application's attribute list for each manifest
// slot that carries storage.
type AttributeLists map[ClusterKey]AttributeList

// BuildClusterList produces the cluster array of t in manifest order.
// Every storage slot needs a non-nil list; placeholder slots must not get one.
func BuildClusterList(t *Template, lists AttributeLists) ([]ClusterDescriptor, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var errs []error
	for key := range lists {
		if _, ok := t.Slot(key); !ok {
			errs = append(errs, configError(ErrAttributeList, "template %q has no cluster %s", t.Name, key))
		}
	}

	clusters := make([]ClusterDescriptor, 0, len(t.Manifest))
	for _, slot := range t.Manifest {
		key := slot.Key()
		list, ok := lists[key]
		if ok && list == nil && slot.Storage {
			ok = false
		}
		switch {
		case !slot.Storage && ok:
			errs = append(errs, configError(ErrAttributeList, "template %q cluster %s is a placeholder", t.Name, key))
			continue
		case !slot.Storage:
			clusters = append(clusters, NewClusterDescriptor(slot.ClusterID, slot.Role, slot.ManufacturerCode, nil))
			continue
		case !ok:
			errs = append(errs, configError(ErrAttributeList, "template %q cluster %s needs an attribute list", t.Name, key))
			continue
		}
		for _, id := range slot.Required {
			if list.Find(id) == nil {
				errs = append(errs, configError(ErrMissingAttribute, "template %q cluster %s attribute 0x%04X", t.Name, key, id))
			}
		}
		cd := NewClusterDescriptor(slot.ClusterID, slot.Role, slot.ManufacturerCode, list.clone())
		if err := cd.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		clusters = append(clusters, cd)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return clusters, nil
}

// BuildSimpleDescriptor derives the simple descriptor of t for endpoint.
// inNum and outNum must equal the template's constants.
func BuildSimpleDescriptor(t *Template, endpoint uint8, inNum, outNum int) (*SimpleDescriptor, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if !validEndpoint(endpoint) {
		return nil, configError(ErrEndpointRange, "endpoint %d", endpoint)
	}
	if inNum != t.InClusterNum || outNum != t.OutClusterNum {
		return nil, configError(ErrClusterCount, "template %q declares %d/%d clusters, got %d/%d",
			t.Name, t.InClusterNum, t.OutClusterNum, inNum, outNum)
	}
	in, out := t.InputClusters(), t.OutputClusters()
	return &SimpleDescriptor{
		Endpoint:        endpoint,
		ProfileID:       t.ProfileID,
		DeviceID:        t.DeviceID,
		DeviceVersion:   t.DeviceVersion,
		InClusterCount:  len(in),
		OutClusterCount: len(out),
		InClusters:      in,
		OutClusters:     out,
	}, nil
}

// Build runs the cluster-list builder, the simple-descriptor builder and
// the endpoint assembler for t and validates the result. reporting and cvc
// are the caller-owned context tables, sized by t.
func Build(t *Template, endpoint uint8, lists AttributeLists, reporting []ReportSlot, cvc []CVCSlot) (*EndpointDescriptor, error) {
	clusters, err := BuildClusterList(t, lists)
	if err != nil {
		return nil, err
	}
	simple, err := BuildSimpleDescriptor(t, endpoint, t.InClusterNum, t.OutClusterNum)
	if err != nil {
		return nil, err
	}
	ep, err := AssembleEndpoint(simple, clusters, t.ReportAttrCount, reporting, t.CVCAttrCount, cvc)
	if err != nil {
		return nil, err
	}
	if err := ValidateEndpoint(ep); err != nil {
		return nil, err
	}
	return ep, nil
}

// Conforms reports whether ep was built from t: same identity and the same
// cluster IDs per role in the same order.
func Conforms(t *Template, ep *EndpointDescriptor) bool {
	if ep == nil || ep.Simple == nil {
		return false
	}
	s := ep.Simple
	return s.ProfileID == t.ProfileID && s.DeviceID == t.DeviceID && s.DeviceVersion == t.DeviceVersion &&
		slices.Equal(s.InClusters, t.InputClusters()) && slices.Equal(s.OutClusters, t.OutputClusters()) &&
		len(ep.Clusters) == t.InClusterNum+t.OutClusterNum
}
