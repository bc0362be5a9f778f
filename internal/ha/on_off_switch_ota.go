package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// OnOffSwitchOTA is the On/Off Switch variant that can be upgraded over the
// air. The OTA Upgrade client keeps its own attributes; Alarms is advertised
// without local storage.
var OnOffSwitchOTA = &profile.Template{
	Name:          "on_off_switch_ota",
	ProfileID:     zcl.ProfileHomeAutomation,
	DeviceID:      DeviceIDOnOffSwitch,
	DeviceVersion: 0,
	InClusterNum:  4,
	OutClusterNum: 7,
	Manifest: []profile.ClusterSlot{
		profile.Server(zcl.ClusterOnOffSwitchConfig, clusters.OnOffSwitchConfigurationMandatory...),
		profile.Server(zcl.ClusterBasic, clusters.BasicMandatory...),
		profile.Placeholder(zcl.ClusterAlarms),
		profile.Server(zcl.ClusterIdentify, clusters.IdentifyMandatory...),
		profile.Client(zcl.ClusterOnOff),
		profile.Client(zcl.ClusterScenes),
		profile.Client(zcl.ClusterIdentify),
		profile.Client(zcl.ClusterGroups),
		profile.Client(zcl.ClusterBasic),
		profile.ClientWithAttributes(zcl.ClusterOTAUpgrade, clusters.OTAUpgradeClientMandatory...),
		profile.Client(zcl.ClusterTime),
	},
}

// OnOffSwitchOTAAttributes holds the attribute lists of OnOffSwitchOTA, including the OTA Upgrade client.
type OnOffSwitchOTAAttributes struct {
	SwitchConfig profile.AttributeList
	Basic        profile.AttributeList
	Identify     profile.AttributeList
	OTAUpgrade   profile.AttributeList
}

func (a OnOffSwitchOTAAttributes) lists() profile.AttributeLists {
	return profile.AttributeLists{
		profile.ServerKey(zcl.ClusterOnOffSwitchConfig): a.SwitchConfig,
		profile.ServerKey(zcl.ClusterBasic):             a.Basic,
		profile.ServerKey(zcl.ClusterIdentify):          a.Identify,
		profile.ClientKey(zcl.ClusterOTAUpgrade):        a.OTAUpgrade,
	}
}

// OnOffSwitchOTAEndpoint builds an On/Off Switch endpoint with OTA Upgrade.
func OnOffSwitchOTAEndpoint(ep uint8, attrs OnOffSwitchOTAAttributes) (*profile.EndpointDescriptor, error) {
	return profile.Build(OnOffSwitchOTA, ep, attrs.lists(), nil, nil)
}
