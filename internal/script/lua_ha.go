//go:build !no_lua

package script

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"zigbee-ha-profile/internal/devicedb"
	"zigbee-ha-profile/internal/ha"
	"zigbee-ha-profile/internal/zcl"
)

// registerHAModule registers the `ha` global table.
func registerHAModule(L *lua.LState, f *devicedb.File) {
	mod := L.NewTable()

	mod.RawSetString("template", L.NewFunction(func(L *lua.LState) int {
		return haTemplate(L, f)
	}))
	mod.RawSetString("server", L.NewFunction(func(L *lua.LState) int {
		return haSlot(L, zcl.RoleServer, true)
	}))
	mod.RawSetString("client", L.NewFunction(func(L *lua.LState) int {
		return haSlot(L, zcl.RoleClient, false)
	}))
	mod.RawSetString("placeholder", L.NewFunction(func(L *lua.LState) int {
		return haSlot(L, zcl.RoleServer, false)
	}))

	devices := L.NewTable()
	for name, id := range map[string]uint16{
		"on_off_switch":      ha.DeviceIDOnOffSwitch,
		"on_off_output":      ha.DeviceIDOnOffOutput,
		"door_lock":          ha.DeviceIDDoorLock,
		"dimmable_light":     ha.DeviceIDDimmableLight,
		"shade":              ha.DeviceIDShade,
		"window_covering":    ha.DeviceIDWindowCovering,
		"temperature_sensor": ha.DeviceIDTemperatureSensor,
	} {
		devices.RawSetString(name, lua.LNumber(id))
	}
	mod.RawSetString("devices", devices)

	L.SetGlobal("ha", mod)
}

// ha.server(id, {required...}), ha.client(id), ha.placeholder(id) -> slot table
func haSlot(L *lua.LState, role zcl.Role, storage bool) int {
	id := L.CheckInt(1)
	if id < 0 || id > math.MaxUint16 {
		L.ArgError(1, "cluster id out of range")
		return 0
	}
	slot := L.NewTable()
	slot.RawSetString("cluster", lua.LNumber(id))
	slot.RawSetString("role", lua.LString(role.String()))
	slot.RawSetString("storage", lua.LBool(storage))
	if req := L.OptTable(2, nil); req != nil {
		if !storage {
			L.ArgError(2, "required attributes need attribute storage")
			return 0
		}
		slot.RawSetString("required", req)
	}
	L.Push(slot)
	return 1
}

// ha.template{name=..., device_id=..., clusters={...}}
func haTemplate(L *lua.LState, f *devicedb.File) int {
	tbl := L.CheckTable(1)
	d := devicedb.TemplateDefinition{
		Name:          requireString(L, tbl, "name"),
		ProfileID:     uint16(optUint(L, tbl, "profile_id", math.MaxUint16)),
		DeviceID:      uint16(requireUint(L, tbl, "device_id", math.MaxUint16)),
		DeviceVersion: uint8(optUint(L, tbl, "device_version", 0x0F)),
		CVCAttrCount:  int(optUint(L, tbl, "cvc_attr_count", math.MaxUint8)),
	}
	if tbl.RawGetString("report_attr_count") != lua.LNil {
		n := int(requireUint(L, tbl, "report_attr_count", math.MaxUint8))
		d.ReportAttrCount = &n
	}
	eachTable(L, tbl, "clusters", func(s *lua.LTable) {
		d.Clusters = append(d.Clusters, slotDefinition(L, s))
	})
	f.Templates = append(f.Templates, d)
	return 0
}

func slotDefinition(L *lua.LState, s *lua.LTable) devicedb.SlotDefinition {
	role, err := zcl.ParseRole(requireString(L, s, "role"))
	if err != nil {
		L.RaiseError("%v", err)
	}
	def := devicedb.SlotDefinition{
		Cluster:  uint16(requireUint(L, s, "cluster", math.MaxUint16)),
		Role:     role,
		Required: uint16List(L, s, "required"),
	}
	if v, ok := s.RawGetString("storage").(lua.LBool); ok {
		b := bool(v)
		def.Storage = &b
	}
	if s.RawGetString("manufacturer_code") != lua.LNil {
		mc := uint16(requireUint(L, s, "manufacturer_code", math.MaxUint16))
		def.ManufacturerCode = &mc
	}
	return def
}
