package clusters

import "zigbee-ha-profile/internal/zcl"

// Switch types
const (
	SwitchTypeToggle    = 0x00
	SwitchTypeMomentary = 0x01
	SwitchTypeMulti     = 0x02
)

var OnOffSwitchConfiguration = zcl.ClusterDef{
	ID:       zcl.ClusterOnOffSwitchConfig,
	Name:     "On/Off Switch Configuration",
	Revision: 1,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "SwitchType", Type: zcl.TypeEnum8, Access: zcl.AccessRead, Default: SwitchTypeToggle},
		{ID: 0x0010, Name: "SwitchActions", Type: zcl.TypeEnum8, Access: zcl.AccessReadWrite, Default: 0},
	},
}

var OnOffSwitchConfigurationMandatory = []uint16{0x0000, 0x0010}
