//go:build !no_lua

package script

import (
	"math"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"zigbee-ha-profile/internal/devicedb"
	"zigbee-ha-profile/internal/zcl"
)

// registerZCLModule registers the `zcl` global table.
func registerZCLModule(L *lua.LState, f *devicedb.File) {
	mod := L.NewTable()

	mod.RawSetString("cluster", L.NewFunction(func(L *lua.LState) int {
		return zclCluster(L, f)
	}))
	mod.RawSetString("type", L.NewFunction(zclType))

	access := L.NewTable()
	access.RawSetString("read", lua.LNumber(zcl.AccessRead))
	access.RawSetString("write", lua.LNumber(zcl.AccessWrite))
	access.RawSetString("report", lua.LNumber(zcl.AccessReport))
	access.RawSetString("scene", lua.LNumber(zcl.AccessScene))
	mod.RawSetString("access", access)

	mod.RawSetString("HA_PROFILE", lua.LNumber(zcl.ProfileHomeAutomation))

	L.SetGlobal("zcl", mod)
}

// zcl.type(name) -> type id
func zclType(L *lua.LState) int {
	name := L.CheckString(1)
	id, ok := zcl.TypeByName(name)
	if !ok {
		L.ArgError(1, "unknown zcl type "+name)
		return 0
	}
	L.Push(lua.LNumber(id))
	return 1
}

// zcl.cluster{id=..., name=..., revision=..., attributes={...}, commands={...}} -> id
func zclCluster(L *lua.LState, f *devicedb.File) int {
	tbl := L.CheckTable(1)
	c := zcl.ClusterDef{
		ID:       uint16(requireUint(L, tbl, "id", math.MaxUint16)),
		Name:     requireString(L, tbl, "name"),
		Revision: uint16(optUint(L, tbl, "revision", math.MaxUint16)),
	}
	eachTable(L, tbl, "attributes", func(a *lua.LTable) {
		c.Attributes = append(c.Attributes, zcl.AttributeDef{
			ID:      uint16(requireUint(L, a, "id", math.MaxUint16)),
			Name:    requireString(L, a, "name"),
			Type:    attrType(L, a),
			Access:  accessFlags(L, a),
			Default: goValue(a.RawGetString("default")),
		})
	})
	eachTable(L, tbl, "commands", func(cmd *lua.LTable) {
		dir := zcl.DirectionToServer
		if s, ok := cmd.RawGetString("direction").(lua.LString); ok && string(s) == string(zcl.DirectionToClient) {
			dir = zcl.DirectionToClient
		}
		c.Commands = append(c.Commands, zcl.CommandDef{
			ID:        uint8(requireUint(L, cmd, "id", math.MaxUint8)),
			Name:      requireString(L, cmd, "name"),
			Direction: dir,
		})
	})
	f.Clusters = append(f.Clusters, c)
	L.Push(lua.LNumber(c.ID))
	return 1
}

func attrType(L *lua.LState, a *lua.LTable) uint8 {
	switch v := a.RawGetString("type").(type) {
	case lua.LString:
		id, ok := zcl.TypeByName(string(v))
		if !ok {
			L.RaiseError("unknown zcl type %q", string(v))
		}
		return id
	case lua.LNumber:
		return uint8(requireUint(L, a, "type", math.MaxUint8))
	}
	L.RaiseError("attribute type is required")
	return 0
}

// accessFlags accepts a number or a string of r, w, p (report) and s (scene).
func accessFlags(L *lua.LState, a *lua.LTable) uint8 {
	v := a.RawGetString("access")
	s, ok := v.(lua.LString)
	if !ok {
		if v == lua.LNil {
			return zcl.AccessRead
		}
		return uint8(requireUint(L, a, "access", math.MaxUint8))
	}
	var flags uint8
	for _, r := range strings.ToLower(string(s)) {
		switch r {
		case 'r':
			flags |= zcl.AccessRead
		case 'w':
			flags |= zcl.AccessWrite
		case 'p':
			flags |= zcl.AccessReport
		case 's':
			flags |= zcl.AccessScene
		default:
			L.RaiseError("access flag %q", string(r))
		}
	}
	return flags
}
