// Package dispatch routes ZCL frames addressed to local endpoints through
// the registered device contexts.
package dispatch

import (
	"encoding/binary"
	"errors"
	"fmt"

	"zigbee-ha-profile/internal/zcl"
)

// ErrMalformed is returned when a frame or payload cannot be parsed.
var ErrMalformed = errors.New("dispatch: malformed frame")

// Header is the ZCL frame header.
type Header struct {
	FrameControl     uint8
	ManufacturerCode uint16
	Sequence         uint8
	Command          uint8
}

// Global reports whether the frame carries a foundation (profile-wide) command.
func (h Header) Global() bool {
	return h.FrameControl&0x03 == zcl.FrameTypeGlobal
}

// ManufacturerSpecific reports whether the header carries a manufacturer code.
func (h Header) ManufacturerSpecific() bool {
	return h.FrameControl&zcl.FrameManufacturerSpecific != 0
}

// ToClient reports whether the frame was sent by a server to a client.
func (h Header) ToClient() bool {
	return h.FrameControl&zcl.FrameDirectionToClient != 0
}

// DisableDefaultResponse reports whether the sender suppressed the default
// response for successful commands.
func (h Header) DisableDefaultResponse() bool {
	return h.FrameControl&zcl.FrameDisableDefaultResp != 0
}

// TargetRole is the local cluster role a frame is addressed to: frames
// sent towards a server hit the server instance.
func (h Header) TargetRole() zcl.Role {
	if h.ToClient() {
		return zcl.RoleClient
	}
	return zcl.RoleServer
}

// ParseFrame splits a ZCL frame into its header and payload.
func ParseFrame(frame []byte) (Header, []byte, error) {
	var h Header
	if len(frame) < 3 {
		return h, nil, fmt.Errorf("%w: %d bytes", ErrMalformed, len(frame))
	}
	h.FrameControl = frame[0]
	off := 1
	if h.ManufacturerSpecific() {
		if len(frame) < 5 {
			return h, nil, fmt.Errorf("%w: manufacturer-specific header truncated", ErrMalformed)
		}
		h.ManufacturerCode = binary.LittleEndian.Uint16(frame[1:3])
		off = 3
	}
	h.Sequence = frame[off]
	h.Command = frame[off+1]
	return h, frame[off+2:], nil
}

// AppendHeader encodes h in front of payload.
func AppendHeader(h Header, payload []byte) []byte {
	buf := make([]byte, 0, 5+len(payload))
	buf = append(buf, h.FrameControl)
	if h.ManufacturerSpecific() {
		buf = binary.LittleEndian.AppendUint16(buf, h.ManufacturerCode)
	}
	buf = append(buf, h.Sequence, h.Command)
	return append(buf, payload...)
}

// responseHeader answers req: same sequence and manufacturer code, opposite
// direction, no default response.
func responseHeader(req Header, frameType, command uint8) Header {
	fc := frameType | zcl.FrameDisableDefaultResp
	if req.ManufacturerSpecific() {
		fc |= zcl.FrameManufacturerSpecific
	}
	if !req.ToClient() {
		fc |= zcl.FrameDirectionToClient
	}
	return Header{
		FrameControl:     fc,
		ManufacturerCode: req.ManufacturerCode,
		Sequence:         req.Sequence,
		Command:          command,
	}
}

// defaultResponse builds a Default Response frame for req.
func defaultResponse(req Header, status uint8) []byte {
	h := responseHeader(req, zcl.FrameTypeGlobal, zcl.FoundationDefaultResponse)
	return AppendHeader(h, []byte{req.Command, status})
}
