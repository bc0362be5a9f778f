package zcl

// Profile IDs
const (
	ProfileHomeAutomation uint16 = 0x0104
	ProfileSmartEnergy    uint16 = 0x0109
)

// ManufCodeInvalid marks a standard (non manufacturer-specific) cluster.
const ManufCodeInvalid uint16 = 0xFFFF

// Cluster IDs used by the Home Automation device types.
const (
	ClusterBasic                  uint16 = 0x0000
	ClusterPowerConfig            uint16 = 0x0001
	ClusterIdentify               uint16 = 0x0003
	ClusterGroups                 uint16 = 0x0004
	ClusterScenes                 uint16 = 0x0005
	ClusterOnOff                  uint16 = 0x0006
	ClusterOnOffSwitchConfig      uint16 = 0x0007
	ClusterLevelControl           uint16 = 0x0008
	ClusterAlarms                 uint16 = 0x0009
	ClusterTime                   uint16 = 0x000A
	ClusterOTAUpgrade             uint16 = 0x0019
	ClusterShadeConfig            uint16 = 0x0100
	ClusterDoorLock               uint16 = 0x0101
	ClusterWindowCovering         uint16 = 0x0102
	ClusterColorControl           uint16 = 0x0300
	ClusterTemperatureMeasurement uint16 = 0x0402
	ClusterMetering               uint16 = 0x0702
	ClusterMessaging              uint16 = 0x0703
	ClusterDailySchedule          uint16 = 0x070D
	ClusterMeterIdentification    uint16 = 0x0B01
	ClusterElectricalMeasurement  uint16 = 0x0B04
	ClusterDiagnostics            uint16 = 0x0B05
)

// Global attributes present on every cluster instance.
const (
	AttrClusterRevision    uint16 = 0xFFFD
	AttrAttributeReporting uint16 = 0xFFFE
)

// Endpoint addressing limits for application endpoints.
const (
	MinAppEndpoint uint8 = 1
	MaxAppEndpoint uint8 = 240
)
