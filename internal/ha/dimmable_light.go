package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// DimmableLight keeps one CVC slot for Level Control transitions.
var DimmableLight = &profile.Template{
	Name:          "dimmable_light",
	ProfileID:     zcl.ProfileHomeAutomation,
	DeviceID:      DeviceIDDimmableLight,
	DeviceVersion: 1,
	InClusterNum:  6,
	OutClusterNum: 0,
	Manifest: []profile.ClusterSlot{
		profile.Server(zcl.ClusterIdentify, clusters.IdentifyMandatory...),
		profile.Server(zcl.ClusterBasic, clusters.BasicMandatory...),
		profile.Server(zcl.ClusterScenes, clusters.ScenesMandatory...),
		profile.Server(zcl.ClusterGroups, clusters.GroupsMandatory...),
		profile.Server(zcl.ClusterOnOff, clusters.OnOffMandatory...),
		profile.Server(zcl.ClusterLevelControl, clusters.LevelControlMandatory...),
	},
	ReportAttrCount: reportable(&clusters.OnOff, &clusters.LevelControl),
	CVCAttrCount:    1,
}

// DimmableLightAttributes holds one attribute list per storage slot of DimmableLight.
type DimmableLightAttributes struct {
	Identify     profile.AttributeList
	Basic        profile.AttributeList
	Scenes       profile.AttributeList
	Groups       profile.AttributeList
	OnOff        profile.AttributeList
	LevelControl profile.AttributeList
}

func (a DimmableLightAttributes) lists() profile.AttributeLists {
	return profile.AttributeLists{
		profile.ServerKey(zcl.ClusterIdentify):     a.Identify,
		profile.ServerKey(zcl.ClusterBasic):        a.Basic,
		profile.ServerKey(zcl.ClusterScenes):       a.Scenes,
		profile.ServerKey(zcl.ClusterGroups):       a.Groups,
		profile.ServerKey(zcl.ClusterOnOff):        a.OnOff,
		profile.ServerKey(zcl.ClusterLevelControl): a.LevelControl,
	}
}

// DimmableLightEndpoint builds a Dimmable Light endpoint.
func DimmableLightEndpoint(ep uint8, attrs DimmableLightAttributes, reporting []profile.ReportSlot, cvc []profile.CVCSlot) (*profile.EndpointDescriptor, error) {
	return profile.Build(DimmableLight, ep, attrs.lists(), reporting, cvc)
}
