package zcl

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ZCL data type IDs
const (
	TypeNoData     uint8 = 0x00
	TypeData8      uint8 = 0x08
	TypeData16     uint8 = 0x09
	TypeBool       uint8 = 0x10
	TypeBitmap8    uint8 = 0x18
	TypeBitmap16   uint8 = 0x19
	TypeBitmap24   uint8 = 0x1A
	TypeBitmap32   uint8 = 0x1B
	TypeBitmap64   uint8 = 0x1F
	TypeUint8      uint8 = 0x20
	TypeUint16     uint8 = 0x21
	TypeUint24     uint8 = 0x22
	TypeUint32     uint8 = 0x23
	TypeUint40     uint8 = 0x24
	TypeUint48     uint8 = 0x25
	TypeUint64     uint8 = 0x27
	TypeInt8       uint8 = 0x28
	TypeInt16      uint8 = 0x29
	TypeInt24      uint8 = 0x2A
	TypeInt32      uint8 = 0x2B
	TypeInt48      uint8 = 0x2D
	TypeInt64      uint8 = 0x2F
	TypeEnum8      uint8 = 0x30
	TypeEnum16     uint8 = 0x31
	TypeFloat16    uint8 = 0x38
	TypeFloat32    uint8 = 0x39
	TypeFloat64    uint8 = 0x3A
	TypeOctetStr   uint8 = 0x41
	TypeCharStr    uint8 = 0x42
	TypeOctetStr16 uint8 = 0x43
	TypeCharStr16  uint8 = 0x44
	TypeArray      uint8 = 0x48
	TypeStruct     uint8 = 0x4C
	TypeToD        uint8 = 0xE0 // Time of Day
	TypeDate       uint8 = 0xE1
	TypeUTC        uint8 = 0xE2
	TypeClusterID  uint8 = 0xE8
	TypeAttrID     uint8 = 0xE9
	TypeEUI64      uint8 = 0xF0
	TypeSecKey128  uint8 = 0xF1
	TypeInvalid    uint8 = 0xFF
)

type typeKind uint8

const (
	kindNone typeKind = iota
	kindBool
	kindUnsigned
	kindSigned
	kindFloat
	kindCharStr
	kindOctetStr
	kindRaw
	kindOpaque
)

type typeInfo struct {
	name   string
	size   int // -1 for length-prefixed or composite types
	kind   typeKind
	analog bool
}

var typeTable = map[uint8]typeInfo{
	TypeNoData:     {"nodata", 0, kindNone, false},
	TypeData8:      {"data8", 1, kindUnsigned, false},
	TypeData16:     {"data16", 2, kindUnsigned, false},
	TypeBool:       {"bool", 1, kindBool, false},
	TypeBitmap8:    {"map8", 1, kindUnsigned, false},
	TypeBitmap16:   {"map16", 2, kindUnsigned, false},
	TypeBitmap24:   {"map24", 3, kindUnsigned, false},
	TypeBitmap32:   {"map32", 4, kindUnsigned, false},
	TypeBitmap64:   {"map64", 8, kindUnsigned, false},
	TypeUint8:      {"uint8", 1, kindUnsigned, true},
	TypeUint16:     {"uint16", 2, kindUnsigned, true},
	TypeUint24:     {"uint24", 3, kindUnsigned, true},
	TypeUint32:     {"uint32", 4, kindUnsigned, true},
	TypeUint40:     {"uint40", 5, kindUnsigned, true},
	TypeUint48:     {"uint48", 6, kindUnsigned, true},
	TypeUint64:     {"uint64", 8, kindUnsigned, true},
	TypeInt8:       {"int8", 1, kindSigned, true},
	TypeInt16:      {"int16", 2, kindSigned, true},
	TypeInt24:      {"int24", 3, kindSigned, true},
	TypeInt32:      {"int32", 4, kindSigned, true},
	TypeInt48:      {"int48", 6, kindSigned, true},
	TypeInt64:      {"int64", 8, kindSigned, true},
	TypeEnum8:      {"enum8", 1, kindUnsigned, false},
	TypeEnum16:     {"enum16", 2, kindUnsigned, false},
	TypeFloat16:    {"float16", 2, kindUnsigned, true}, // carried as raw bits
	TypeFloat32:    {"float32", 4, kindFloat, true},
	TypeFloat64:    {"float64", 8, kindFloat, true},
	TypeOctetStr:   {"octstr", -1, kindOctetStr, false},
	TypeCharStr:    {"string", -1, kindCharStr, false},
	TypeOctetStr16: {"octstr16", -1, kindOctetStr, false},
	TypeCharStr16:  {"string16", -1, kindCharStr, false},
	TypeArray:      {"array", -1, kindOpaque, false},
	TypeStruct:     {"struct", -1, kindOpaque, false},
	TypeToD:        {"ToD", 4, kindUnsigned, true},
	TypeDate:       {"date", 4, kindUnsigned, true},
	TypeUTC:        {"UTC", 4, kindUnsigned, true},
	TypeClusterID:  {"clusterId", 2, kindUnsigned, false},
	TypeAttrID:     {"attribId", 2, kindUnsigned, false},
	TypeEUI64:      {"EUI64", 8, kindRaw, false},
	TypeSecKey128:  {"key128", 16, kindRaw, false},
}

// TypeSize returns the fixed size in bytes of a ZCL type, or -1 for variable-length types.
func TypeSize(typeID uint8) int {
	info, ok := typeTable[typeID]
	if !ok {
		return -1
	}
	return info.size
}

// TypeName returns a human-readable name for a ZCL type.
func TypeName(typeID uint8) string {
	if info, ok := typeTable[typeID]; ok {
		return info.name
	}
	return fmt.Sprintf("0x%02X", typeID)
}

// TypeByName is the inverse of TypeName for known types.
func TypeByName(name string) (uint8, bool) {
	for id, info := range typeTable {
		if info.name == name {
			return id, true
		}
	}
	return 0, false
}

// KnownType reports whether typeID is one the codec understands.
func KnownType(typeID uint8) bool {
	_, ok := typeTable[typeID]
	return ok
}

// IsAnalog reports whether values of the type are ordered quantities.
// Configure Reporting records carry a reportable change field only for
// analog types.
func IsAnalog(typeID uint8) bool {
	return typeTable[typeID].analog
}

// lengthPrefix returns the size of the length prefix of a string type.
func lengthPrefix(typeID uint8) int {
	if typeID == TypeOctetStr16 || typeID == TypeCharStr16 {
		return 2
	}
	return 1
}

// DecodeValue decodes a ZCL typed value from raw bytes, returning the Go value and bytes consumed.
func DecodeValue(typeID uint8, data []byte) (interface{}, int, error) {
	info, ok := typeTable[typeID]
	if !ok {
		return nil, 0, fmt.Errorf("zcl: unsupported type 0x%02X", typeID)
	}
	switch info.kind {
	case kindNone:
		return nil, 0, nil
	case kindCharStr, kindOctetStr:
		return decodeString(typeID, info.kind, data)
	case kindOpaque:
		return nil, 0, fmt.Errorf("zcl: unsupported variable type 0x%02X", typeID)
	}

	if len(data) < info.size {
		return nil, 0, fmt.Errorf("zcl: not enough data for type 0x%02X: need %d, have %d", typeID, info.size, len(data))
	}
	raw := data[:info.size]

	switch info.kind {
	case kindBool:
		return raw[0] != 0, 1, nil
	case kindUnsigned:
		v := readUint(raw)
		switch {
		case info.size == 1:
			return uint8(v), 1, nil
		case info.size == 2:
			return uint16(v), 2, nil
		case info.size <= 4:
			return uint32(v), info.size, nil
		}
		return v, info.size, nil
	case kindSigned:
		v := signExtend(readUint(raw), info.size)
		switch {
		case info.size == 1:
			return int8(v), 1, nil
		case info.size == 2:
			return int16(v), 2, nil
		case info.size <= 4:
			return int32(v), info.size, nil
		}
		return v, info.size, nil
	case kindFloat:
		if info.size == 4 {
			return math.Float32frombits(binary.LittleEndian.Uint32(raw)), 4, nil
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(raw)), 8, nil
	case kindRaw:
		if typeID == TypeEUI64 {
			var addr [8]byte
			copy(addr[:], raw)
			return addr, 8, nil
		}
		b := make([]byte, info.size)
		copy(b, raw)
		return b, info.size, nil
	}
	return nil, 0, fmt.Errorf("zcl: unsupported type 0x%02X", typeID)
}

func decodeString(typeID uint8, kind typeKind, data []byte) (interface{}, int, error) {
	prefix := lengthPrefix(typeID)
	if len(data) < prefix {
		return nil, 0, fmt.Errorf("zcl: no length prefix for %s", TypeName(typeID))
	}
	var length int
	if prefix == 1 {
		length = int(data[0])
		if length == 0xFF {
			return nil, 1, nil // invalid value
		}
	} else {
		length = int(binary.LittleEndian.Uint16(data[:2]))
		if length == 0xFFFF {
			return nil, 2, nil
		}
	}
	if len(data) < prefix+length {
		return nil, 0, fmt.Errorf("zcl: %s truncated: need %d, have %d", TypeName(typeID), length, len(data)-prefix)
	}
	body := data[prefix : prefix+length]
	if kind == kindCharStr {
		return string(body), prefix + length, nil
	}
	b := make([]byte, length)
	copy(b, body)
	return b, prefix + length, nil
}

// EncodeValue encodes a Go value into ZCL wire format.
func EncodeValue(typeID uint8, val interface{}) ([]byte, error) {
	info, ok := typeTable[typeID]
	if !ok || info.kind == kindOpaque {
		return nil, fmt.Errorf("zcl: encode not implemented for type 0x%02X", typeID)
	}

	switch info.kind {
	case kindNone:
		return nil, nil

	case kindBool:
		v, ok := toBool(val)
		if !ok {
			return nil, fmt.Errorf("zcl: cannot convert %T to bool", val)
		}
		if v {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case kindUnsigned:
		v, ok := toUint64(val)
		if !ok {
			return nil, fmt.Errorf("zcl: cannot convert %T to %s", val, info.name)
		}
		if max := maxUnsigned(info.size); v > max {
			return nil, fmt.Errorf("zcl: value %d overflows %s (max %d)", v, info.name, max)
		}
		return writeUint(v, info.size), nil

	case kindSigned:
		v, ok := toInt64(val)
		if !ok {
			return nil, fmt.Errorf("zcl: cannot convert %T to %s", val, info.name)
		}
		lo, hi := signedRange(info.size)
		if v < lo || v > hi {
			return nil, fmt.Errorf("zcl: value %d overflows %s (range %d..%d)", v, info.name, lo, hi)
		}
		return writeUint(uint64(v), info.size), nil

	case kindFloat:
		v, ok := toFloat64(val)
		if !ok {
			return nil, fmt.Errorf("zcl: cannot convert %T to %s", val, info.name)
		}
		if info.size == 4 {
			return binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(v))), nil
		}
		return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v)), nil

	case kindRaw:
		var b []byte
		switch a := val.(type) {
		case [8]byte:
			b = a[:]
		case []byte:
			b = a
		default:
			return nil, fmt.Errorf("zcl: cannot convert %T to %s", val, info.name)
		}
		if len(b) != info.size {
			return nil, fmt.Errorf("zcl: %s requires %d bytes, got %d", info.name, info.size, len(b))
		}
		out := make([]byte, info.size)
		copy(out, b)
		return out, nil

	case kindCharStr, kindOctetStr:
		var body []byte
		switch s := val.(type) {
		case string:
			if info.kind != kindCharStr {
				return nil, fmt.Errorf("zcl: cannot convert %T to []byte", val)
			}
			body = []byte(s)
		case []byte:
			if info.kind != kindOctetStr {
				return nil, fmt.Errorf("zcl: cannot convert %T to string", val)
			}
			body = s
		default:
			return nil, fmt.Errorf("zcl: cannot convert %T to %s", val, info.name)
		}
		prefix := lengthPrefix(typeID)
		limit := 254
		if prefix == 2 {
			limit = 65534
		}
		if len(body) > limit {
			return nil, fmt.Errorf("zcl: data too long for %s: %d (max %d)", info.name, len(body), limit)
		}
		buf := writeUint(uint64(len(body)), prefix)
		return append(buf, body...), nil
	}

	return nil, fmt.Errorf("zcl: encode not implemented for type 0x%02X", typeID)
}

// ValueLength returns the number of bytes the encoded value at the start of
// data occupies, without decoding it.
func ValueLength(typeID uint8, data []byte) (int, error) {
	info, ok := typeTable[typeID]
	if !ok || info.kind == kindOpaque {
		return 0, fmt.Errorf("zcl: unsupported type 0x%02X", typeID)
	}
	if info.size >= 0 {
		if len(data) < info.size {
			return 0, fmt.Errorf("zcl: not enough data for type 0x%02X: need %d, have %d", typeID, info.size, len(data))
		}
		return info.size, nil
	}
	_, n, err := decodeString(typeID, info.kind, data)
	return n, err
}

func readUint(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func writeUint(v uint64, size int) []byte {
	buf := make([]byte, size)
	for i := 0; i < size; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	return buf
}

func signExtend(v uint64, size int) int64 {
	shift := uint(64 - 8*size)
	return int64(v<<shift) >> shift
}

func maxUnsigned(size int) uint64 {
	if size >= 8 {
		return math.MaxUint64
	}
	return 1<<(8*uint(size)) - 1
}

func signedRange(size int) (int64, int64) {
	if size >= 8 {
		return math.MinInt64, math.MaxInt64
	}
	hi := int64(1)<<(8*uint(size)-1) - 1
	return -hi - 1, hi
}

func toBool(v interface{}) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case float64:
		return val != 0, true
	case int:
		return val != 0, true
	}
	return false, false
}

func toUint64(v interface{}) (uint64, bool) {
	switch val := v.(type) {
	case uint8:
		return uint64(val), true
	case uint16:
		return uint64(val), true
	case uint32:
		return uint64(val), true
	case uint64:
		return val, true
	case int:
		if val < 0 {
			return 0, false
		}
		return uint64(val), true
	case int64:
		if val < 0 {
			return 0, false
		}
		return uint64(val), true
	case float64:
		if val < 0 {
			return 0, false
		}
		return uint64(val), true
	}
	return 0, false
}

func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint64:
		return float64(val), true
	}
	return 0, false
}

func toInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case int:
		return int64(val), true
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		if val > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	case float64:
		if val > math.MaxInt64 || val < math.MinInt64 {
			return 0, false
		}
		return int64(val), true
	}
	return 0, false
}
