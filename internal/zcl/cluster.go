package zcl

import "fmt"

// Access flags, bit-compatible with the ZCL attribute access byte.
const (
	AccessRead          uint8 = 0x01
	AccessWrite         uint8 = 0x02
	AccessReadWrite     uint8 = AccessRead | AccessWrite
	AccessReport        uint8 = 0x04
	AccessSingleton     uint8 = 0x08
	AccessScene         uint8 = 0x10
	AccessManufSpecific uint8 = 0x20
	AccessInternal      uint8 = 0x40
)

// Role is the side of a cluster an endpoint implements.
type Role uint8

const (
	RoleServer Role = 0x01
	RoleClient Role = 0x02
)

func (r Role) String() string {
	switch r {
	case RoleServer:
		return "server"
	case RoleClient:
		return "client"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// ParseRole accepts "server"/"client" and the short forms "s"/"c".
func ParseRole(s string) (Role, error) {
	switch s {
	case "server", "s", "in":
		return RoleServer, nil
	case "client", "c", "out":
		return RoleClient, nil
	}
	return 0, fmt.Errorf("zcl: unknown cluster role %q", s)
}

// MarshalText never fails; an out-of-range role encodes as "role(N)",
// which UnmarshalText rejects.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Valid reports whether r is server or client.
func (r Role) Valid() bool {
	return r == RoleServer || r == RoleClient
}

// AttributeDef defines a ZCL attribute.
type AttributeDef struct {
	ID      uint16      `json:"id"`
	Name    string      `json:"name"`
	Type    uint8       `json:"type"`
	Access  uint8       `json:"access"` // bitmask, see Access* constants
	Default interface{} `json:"default,omitempty"`
}

// IsReadable returns true if the attribute can be read.
func (a *AttributeDef) IsReadable() bool {
	return a.Access&AccessRead != 0
}

// IsWritable returns true if the attribute can be written.
func (a *AttributeDef) IsWritable() bool {
	return a.Access&AccessWrite != 0
}

// IsReportable returns true if the attribute supports reporting.
func (a *AttributeDef) IsReportable() bool {
	return a.Access&AccessReport != 0
}

// IsSceneAttribute returns true if the attribute is part of a scene extension set.
func (a *AttributeDef) IsSceneAttribute() bool {
	return a.Access&AccessScene != 0
}

// CommandDirection indicates the direction of a cluster command.
type CommandDirection string

const (
	DirectionToServer CommandDirection = "toServer"
	DirectionToClient CommandDirection = "toClient"
)

// CommandDef defines a cluster-specific command.
type CommandDef struct {
	ID        uint8            `json:"id"`
	Name      string           `json:"name"`
	Direction CommandDirection `json:"direction"`
}

// ClusterDef defines a ZCL cluster with its attributes and commands.
type ClusterDef struct {
	ID         uint16         `json:"id"`
	Name       string         `json:"name"`
	Revision   uint16         `json:"revision,omitempty"`
	Attributes []AttributeDef `json:"attributes,omitempty"`
	Commands   []CommandDef   `json:"commands,omitempty"`
}

// FindAttribute looks up an attribute by ID.
func (c *ClusterDef) FindAttribute(id uint16) *AttributeDef {
	for i := range c.Attributes {
		if c.Attributes[i].ID == id {
			return &c.Attributes[i]
		}
	}
	return nil
}

// FindCommand looks up a command by ID and direction.
func (c *ClusterDef) FindCommand(id uint8, dir CommandDirection) *CommandDef {
	for i := range c.Commands {
		if c.Commands[i].ID == id && c.Commands[i].Direction == dir {
			return &c.Commands[i]
		}
	}
	return nil
}

// ReportableCount returns how many of the listed attributes are reportable.
// With no IDs it counts every reportable attribute of the cluster.
func (c *ClusterDef) ReportableCount(ids ...uint16) int {
	return c.countAccess(AccessReport, ids)
}

// SceneCount is ReportableCount for the scene extension flag.
func (c *ClusterDef) SceneCount(ids ...uint16) int {
	return c.countAccess(AccessScene, ids)
}

func (c *ClusterDef) countAccess(flag uint8, ids []uint16) int {
	n := 0
	if len(ids) == 0 {
		for _, a := range c.Attributes {
			if a.Access&flag != 0 {
				n++
			}
		}
		return n
	}
	for _, id := range ids {
		if a := c.FindAttribute(id); a != nil && a.Access&flag != 0 {
			n++
		}
	}
	return n
}

// DeepCopy returns a deep copy of the cluster definition.
func (c *ClusterDef) DeepCopy() *ClusterDef {
	cp := *c
	if c.Attributes != nil {
		cp.Attributes = make([]AttributeDef, len(c.Attributes))
		copy(cp.Attributes, c.Attributes)
	}
	if c.Commands != nil {
		cp.Commands = make([]CommandDef, len(c.Commands))
		copy(cp.Commands, c.Commands)
	}
	return &cp
}

// Merge adds attributes and commands from another definition (template file overlay).
func (c *ClusterDef) Merge(other *ClusterDef) {
	for _, attr := range other.Attributes {
		if c.FindAttribute(attr.ID) == nil {
			c.Attributes = append(c.Attributes, attr)
		}
	}
	for _, cmd := range other.Commands {
		if c.FindCommand(cmd.ID, cmd.Direction) == nil {
			c.Commands = append(c.Commands, cmd)
		}
	}
	if c.Revision == 0 {
		c.Revision = other.Revision
	}
}
