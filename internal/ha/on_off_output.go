package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// OnOffOutput is the HA On/Off Output device.
var OnOffOutput = &profile.Template{
	Name:          "on_off_output",
	ProfileID:     zcl.ProfileHomeAutomation,
	DeviceID:      DeviceIDOnOffOutput,
	DeviceVersion: 0,
	InClusterNum:  5,
	OutClusterNum: 0,
	Manifest: []profile.ClusterSlot{
		profile.Server(zcl.ClusterIdentify, clusters.IdentifyMandatory...),
		profile.Server(zcl.ClusterBasic, clusters.BasicMandatory...),
		profile.Server(zcl.ClusterOnOff, clusters.OnOffMandatory...),
		profile.Server(zcl.ClusterScenes, clusters.ScenesMandatory...),
		profile.Server(zcl.ClusterGroups, clusters.GroupsMandatory...),
	},
	ReportAttrCount: reportable(&clusters.OnOff),
}

// OnOffOutputAttributes holds one attribute list per storage slot of OnOffOutput.
type OnOffOutputAttributes struct {
	Identify profile.AttributeList
	Basic    profile.AttributeList
	OnOff    profile.AttributeList
	Scenes   profile.AttributeList
	Groups   profile.AttributeList
}

func (a OnOffOutputAttributes) lists() profile.AttributeLists {
	return profile.AttributeLists{
		profile.ServerKey(zcl.ClusterIdentify): a.Identify,
		profile.ServerKey(zcl.ClusterBasic):    a.Basic,
		profile.ServerKey(zcl.ClusterOnOff):    a.OnOff,
		profile.ServerKey(zcl.ClusterScenes):   a.Scenes,
		profile.ServerKey(zcl.ClusterGroups):   a.Groups,
	}
}

// OnOffOutputEndpoint builds an On/Off Output endpoint.
func OnOffOutputEndpoint(ep uint8, attrs OnOffOutputAttributes, reporting []profile.ReportSlot) (*profile.EndpointDescriptor, error) {
	return profile.Build(OnOffOutput, ep, attrs.lists(), reporting, nil)
}
