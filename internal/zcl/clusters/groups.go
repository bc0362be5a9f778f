package clusters

import "zigbee-ha-profile/internal/zcl"

var Groups = zcl.ClusterDef{
	ID:       zcl.ClusterGroups,
	Name:     "Groups",
	Revision: 2,
	Attributes: []zcl.AttributeDef{
		// Bit 7 set: group names supported.
		{ID: 0x0000, Name: "NameSupport", Type: zcl.TypeBitmap8, Access: zcl.AccessRead, Default: 0},
	},
	Commands: []zcl.CommandDef{
		{ID: 0x00, Name: "AddGroup", Direction: zcl.DirectionToServer},
		{ID: 0x01, Name: "ViewGroup", Direction: zcl.DirectionToServer},
		{ID: 0x02, Name: "GetGroupMembership", Direction: zcl.DirectionToServer},
		{ID: 0x03, Name: "RemoveGroup", Direction: zcl.DirectionToServer},
		{ID: 0x04, Name: "RemoveAllGroups", Direction: zcl.DirectionToServer},
		{ID: 0x05, Name: "AddGroupIfIdentifying", Direction: zcl.DirectionToServer},
		{ID: 0x00, Name: "AddGroupResponse", Direction: zcl.DirectionToClient},
		{ID: 0x01, Name: "ViewGroupResponse", Direction: zcl.DirectionToClient},
		{ID: 0x02, Name: "GetGroupMembershipResponse", Direction: zcl.DirectionToClient},
		{ID: 0x03, Name: "RemoveGroupResponse", Direction: zcl.DirectionToClient},
	},
}

var GroupsMandatory = []uint16{0x0000}
