//go:build !no_lua

package script

import (
	"math"

	lua "github.com/yuin/gopher-lua"
)

func requireString(L *lua.LState, t *lua.LTable, key string) string {
	s, ok := t.RawGetString(key).(lua.LString)
	if !ok || s == "" {
		L.RaiseError("field %q: string required", key)
	}
	return string(s)
}

func requireUint(L *lua.LState, t *lua.LTable, key string, max uint64) uint64 {
	v := t.RawGetString(key)
	if v == lua.LNil {
		L.RaiseError("field %q is required", key)
	}
	return toUint(L, key, v, max)
}

func optUint(L *lua.LState, t *lua.LTable, key string, max uint64) uint64 {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return 0
	}
	return toUint(L, key, v, max)
}

func toUint(L *lua.LState, key string, v lua.LValue, max uint64) uint64 {
	n, ok := v.(lua.LNumber)
	f := float64(n)
	if !ok || f < 0 || f != math.Trunc(f) || f > float64(max) {
		L.RaiseError("field %q: integer 0..%d required", key, max)
	}
	return uint64(f)
}

func uint16List(L *lua.LState, t *lua.LTable, key string) []uint16 {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return nil
	}
	list, ok := v.(*lua.LTable)
	if !ok {
		L.RaiseError("field %q: list required", key)
	}
	out := make([]uint16, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		out = append(out, uint16(toUint(L, key, list.RawGetInt(i), math.MaxUint16)))
	}
	return out
}

// eachTable calls fn for every table of the list in t[key].
func eachTable(L *lua.LState, t *lua.LTable, key string, fn func(*lua.LTable)) {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return
	}
	list, ok := v.(*lua.LTable)
	if !ok {
		L.RaiseError("field %q: list required", key)
	}
	for i := 1; i <= list.Len(); i++ {
		item, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.RaiseError("field %q[%d]: table required", key, i)
		}
		fn(item)
	}
}

// goValue converts a Lua default value to the types the zcl codec accepts.
func goValue(v lua.LValue) interface{} {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(val)
	}
	return nil
}
