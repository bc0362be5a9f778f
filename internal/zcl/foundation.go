package zcl

// Foundation ZCL command IDs (global, not cluster-specific).
const (
	FoundationReadAttributes           uint8 = 0x00
	FoundationReadAttributesResponse   uint8 = 0x01
	FoundationWriteAttributes          uint8 = 0x02
	FoundationWriteAttributesUndivided uint8 = 0x03
	FoundationWriteAttributesResp      uint8 = 0x04
	FoundationWriteAttributesNoResp    uint8 = 0x05
	FoundationConfigReporting          uint8 = 0x06
	FoundationConfigReportingResp      uint8 = 0x07
	FoundationReadReportingConfig      uint8 = 0x08
	FoundationReadReportingConfigResp  uint8 = 0x09
	FoundationReportAttributes         uint8 = 0x0A
	FoundationDefaultResponse          uint8 = 0x0B
	FoundationDiscoverAttributes       uint8 = 0x0C
	FoundationDiscoverAttributesResp   uint8 = 0x0D
)

// ZCL status codes
const (
	ZCLStatusSuccess              uint8 = 0x00
	ZCLStatusFailure              uint8 = 0x01
	ZCLStatusMalformedCommand     uint8 = 0x80
	ZCLStatusUnsupClusterCmd      uint8 = 0x81
	ZCLStatusUnsupGeneralCmd      uint8 = 0x82
	ZCLStatusUnsupManufClusterCmd uint8 = 0x83
	ZCLStatusUnsupportedAttr      uint8 = 0x86
	ZCLStatusInvalidValue         uint8 = 0x87
	ZCLStatusReadOnly             uint8 = 0x88
	ZCLStatusInsufficientSpace    uint8 = 0x89
	ZCLStatusNotFound             uint8 = 0x8B
	ZCLStatusUnreportable         uint8 = 0x8C
	ZCLStatusInvalidDataType      uint8 = 0x8D
	ZCLStatusWriteOnly            uint8 = 0x8F
	ZCLStatusUnsupCluster         uint8 = 0xC3
)

// Frame control bits of the ZCL header.
const (
	FrameTypeGlobal           uint8 = 0x00
	FrameTypeCluster          uint8 = 0x01
	FrameManufacturerSpecific uint8 = 0x04
	FrameDirectionToClient    uint8 = 0x08
	FrameDisableDefaultResp   uint8 = 0x10
)
