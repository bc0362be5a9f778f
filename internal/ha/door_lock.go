package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// DoorLock is the HA Door Lock device. The simple descriptor lists its
// input clusters in cluster-array order.
var DoorLock = &profile.Template{
	Name:          "door_lock",
	ProfileID:     zcl.ProfileHomeAutomation,
	DeviceID:      DeviceIDDoorLock,
	DeviceVersion: 0,
	InClusterNum:  5,
	OutClusterNum: 0,
	Manifest: []profile.ClusterSlot{
		profile.Server(zcl.ClusterIdentify, clusters.IdentifyMandatory...),
		profile.Server(zcl.ClusterBasic, clusters.BasicMandatory...),
		profile.Server(zcl.ClusterDoorLock, clusters.DoorLockMandatory...),
		profile.Server(zcl.ClusterScenes, clusters.ScenesMandatory...),
		profile.Server(zcl.ClusterGroups, clusters.GroupsMandatory...),
	},
	ReportAttrCount: reportable(&clusters.DoorLock),
}

// DoorLockAttributes holds one attribute list per storage slot of DoorLock.
type DoorLockAttributes struct {
	Identify profile.AttributeList
	Basic    profile.AttributeList
	DoorLock profile.AttributeList
	Scenes   profile.AttributeList
	Groups   profile.AttributeList
}

func (a DoorLockAttributes) lists() profile.AttributeLists {
	return profile.AttributeLists{
		profile.ServerKey(zcl.ClusterIdentify): a.Identify,
		profile.ServerKey(zcl.ClusterBasic):    a.Basic,
		profile.ServerKey(zcl.ClusterDoorLock): a.DoorLock,
		profile.ServerKey(zcl.ClusterScenes):   a.Scenes,
		profile.ServerKey(zcl.ClusterGroups):   a.Groups,
	}
}

// DoorLockEndpoint builds a Door Lock endpoint. reporting must hold
// DoorLock.ReportAttrCount slots.
func DoorLockEndpoint(ep uint8, attrs DoorLockAttributes, reporting []profile.ReportSlot) (*profile.EndpointDescriptor, error) {
	return profile.Build(DoorLock, ep, attrs.lists(), reporting, nil)
}
