package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// WindowCovering is the HA Window Covering device.
var WindowCovering = &profile.Template{
	Name:          "window_covering",
	ProfileID:     zcl.ProfileHomeAutomation,
	DeviceID:      DeviceIDWindowCovering,
	DeviceVersion: 0,
	InClusterNum:  5,
	OutClusterNum: 0,
	Manifest: []profile.ClusterSlot{
		profile.Server(zcl.ClusterIdentify, clusters.IdentifyMandatory...),
		profile.Server(zcl.ClusterBasic, clusters.BasicMandatory...),
		profile.Server(zcl.ClusterWindowCovering, clusters.WindowCoveringMandatory...),
		profile.Server(zcl.ClusterScenes, clusters.ScenesMandatory...),
		profile.Server(zcl.ClusterGroups, clusters.GroupsMandatory...),
	},
	ReportAttrCount: reportable(&clusters.WindowCovering),
}

// WindowCoveringAttributes holds one attribute list per storage slot of WindowCovering.
type WindowCoveringAttributes struct {
	Identify       profile.AttributeList
	Basic          profile.AttributeList
	WindowCovering profile.AttributeList
	Scenes         profile.AttributeList
	Groups         profile.AttributeList
}

func (a WindowCoveringAttributes) lists() profile.AttributeLists {
	return profile.AttributeLists{
		profile.ServerKey(zcl.ClusterIdentify):       a.Identify,
		profile.ServerKey(zcl.ClusterBasic):          a.Basic,
		profile.ServerKey(zcl.ClusterWindowCovering): a.WindowCovering,
		profile.ServerKey(zcl.ClusterScenes):         a.Scenes,
		profile.ServerKey(zcl.ClusterGroups):         a.Groups,
	}
}

// WindowCoveringEndpoint builds a Window Covering endpoint.
func WindowCoveringEndpoint(ep uint8, attrs WindowCoveringAttributes, reporting []profile.ReportSlot) (*profile.EndpointDescriptor, error) {
	return profile.Build(WindowCovering, ep, attrs.lists(), reporting, nil)
}
