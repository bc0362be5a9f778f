package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// CustomDimmableLight is the dimmable light with a Color Control server added.
var CustomDimmableLight = &profile.Template{
	Name:          "custom_dimmable_light",
	ProfileID:     zcl.ProfileHomeAutomation,
	DeviceID:      DeviceIDDimmableLight,
	DeviceVersion: 1,
	InClusterNum:  7,
	OutClusterNum: 0,
	Manifest: []profile.ClusterSlot{
		profile.Server(zcl.ClusterIdentify, clusters.IdentifyMandatory...),
		profile.Server(zcl.ClusterBasic, clusters.BasicMandatory...),
		profile.Server(zcl.ClusterScenes, clusters.ScenesMandatory...),
		profile.Server(zcl.ClusterGroups, clusters.GroupsMandatory...),
		profile.Server(zcl.ClusterOnOff, clusters.OnOffMandatory...),
		profile.Server(zcl.ClusterLevelControl, clusters.LevelControlMandatory...),
		profile.Server(zcl.ClusterColorControl, clusters.ColorControlMandatory...),
	},
	ReportAttrCount: reportable(&clusters.OnOff, &clusters.LevelControl, &clusters.ColorControl),
	CVCAttrCount:    1,
}

// CustomDimmableLightAttributes holds one attribute list per storage slot of CustomDimmableLight.
type CustomDimmableLightAttributes struct {
	Identify     profile.AttributeList
	Basic        profile.AttributeList
	Scenes       profile.AttributeList
	Groups       profile.AttributeList
	OnOff        profile.AttributeList
	LevelControl profile.AttributeList
	ColorControl profile.AttributeList
}

func (a CustomDimmableLightAttributes) lists() profile.AttributeLists {
	return profile.AttributeLists{
		profile.ServerKey(zcl.ClusterIdentify):     a.Identify,
		profile.ServerKey(zcl.ClusterBasic):        a.Basic,
		profile.ServerKey(zcl.ClusterScenes):       a.Scenes,
		profile.ServerKey(zcl.ClusterGroups):       a.Groups,
		profile.ServerKey(zcl.ClusterOnOff):        a.OnOff,
		profile.ServerKey(zcl.ClusterLevelControl): a.LevelControl,
		profile.ServerKey(zcl.ClusterColorControl): a.ColorControl,
	}
}

// CustomDimmableLightEndpoint builds a custom dimmable light endpoint with color control.
func CustomDimmableLightEndpoint(ep uint8, attrs CustomDimmableLightAttributes, reporting []profile.ReportSlot, cvc []profile.CVCSlot) (*profile.EndpointDescriptor, error) {
	return profile.Build(CustomDimmableLight, ep, attrs.lists(), reporting, cvc)
}
