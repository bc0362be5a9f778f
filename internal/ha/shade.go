package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// Shade is the HA Shade device.
var Shade = &profile.Template{
	Name:          "shade",
	ProfileID:     zcl.ProfileHomeAutomation,
	DeviceID:      DeviceIDShade,
	DeviceVersion: 0,
	InClusterNum:  7,
	OutClusterNum: 0,
	Manifest: []profile.ClusterSlot{
		profile.Server(zcl.ClusterIdentify, clusters.IdentifyMandatory...),
		profile.Server(zcl.ClusterBasic, clusters.BasicMandatory...),
		profile.Server(zcl.ClusterShadeConfig, clusters.ShadeConfigurationMandatory...),
		profile.Server(zcl.ClusterScenes, clusters.ScenesMandatory...),
		profile.Server(zcl.ClusterGroups, clusters.GroupsMandatory...),
		profile.Server(zcl.ClusterOnOff, clusters.OnOffMandatory...),
		profile.Server(zcl.ClusterLevelControl, clusters.LevelControlMandatory...),
	},
	ReportAttrCount: reportable(&clusters.OnOff, &clusters.LevelControl, &clusters.ShadeConfiguration),
	CVCAttrCount:    1,
}

// ShadeAttributes holds one attribute list per storage slot of Shade.
type ShadeAttributes struct {
	Identify     profile.AttributeList
	Basic        profile.AttributeList
	ShadeConfig  profile.AttributeList
	Scenes       profile.AttributeList
	Groups       profile.AttributeList
	OnOff        profile.AttributeList
	LevelControl profile.AttributeList
}

func (a ShadeAttributes) lists() profile.AttributeLists {
	return profile.AttributeLists{
		profile.ServerKey(zcl.ClusterIdentify):     a.Identify,
		profile.ServerKey(zcl.ClusterBasic):        a.Basic,
		profile.ServerKey(zcl.ClusterShadeConfig):  a.ShadeConfig,
		profile.ServerKey(zcl.ClusterScenes):       a.Scenes,
		profile.ServerKey(zcl.ClusterGroups):       a.Groups,
		profile.ServerKey(zcl.ClusterOnOff):        a.OnOff,
		profile.ServerKey(zcl.ClusterLevelControl): a.LevelControl,
	}
}

// ShadeEndpoint builds a Shade endpoint.
func ShadeEndpoint(ep uint8, attrs ShadeAttributes, reporting []profile.ReportSlot, cvc []profile.CVCSlot) (*profile.EndpointDescriptor, error) {
	return profile.Build(Shade, ep, attrs.lists(), reporting, cvc)
}
