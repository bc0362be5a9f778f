// Package devicedb is the template library: the built-in HA device types
// plus templates and custom clusters loaded from a directory of YAML, JSON
// or Lua files.
package devicedb

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"zigbee-ha-profile/internal/ha"
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
)

var (
	ErrUnknownTemplate   = errors.New("devicedb: unknown template")
	ErrDuplicateTemplate = errors.New("devicedb: template already defined")
	ErrUnknownCluster    = errors.New("devicedb: cluster not in registry")
	ErrInvalidFile       = errors.New("devicedb: invalid template file")
)

//go:embed schema.json
var schemaDoc []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaDoc))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("template-file.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("template-file.json")
})

// SlotDefinition is one manifest entry of a file template. Server slots
// carry storage unless disabled; client slots only when enabled.
type SlotDefinition struct {
	Cluster          uint16   `json:"cluster"`
	Role             zcl.Role `json:"role"`
	Storage          *bool    `json:"storage,omitempty"`
	ManufacturerCode *uint16  `json:"manufacturer_code,omitempty"`
	Required         []uint16 `json:"required,omitempty"`
}

// TemplateDefinition describes a device type in a template file. An unset
// report count defaults to the reportable attributes of the storage slots.
type TemplateDefinition struct {
	Name            string           `json:"name"`
	ProfileID       uint16           `json:"profile_id,omitempty"`
	DeviceID        uint16           `json:"device_id"`
	DeviceVersion   uint8            `json:"device_version,omitempty"`
	Clusters        []SlotDefinition `json:"clusters"`
	ReportAttrCount *int             `json:"report_attr_count,omitempty"`
	CVCAttrCount    int              `json:"cvc_attr_count,omitempty"`
}

// Template converts the definition, resolving report counts against reg.
func (d *TemplateDefinition) Template(reg *zcl.Registry) (*profile.Template, error) {
	t := &profile.Template{
		Name:          d.Name,
		ProfileID:     d.ProfileID,
		DeviceID:      d.DeviceID,
		DeviceVersion: d.DeviceVersion,
		CVCAttrCount:  d.CVCAttrCount,
		Manifest:      make([]profile.ClusterSlot, 0, len(d.Clusters)),
	}
	if t.ProfileID == 0 {
		t.ProfileID = zcl.ProfileHomeAutomation
	}
	reportable := 0
	for _, s := range d.Clusters {
		slot := profile.ClusterSlot{
			ClusterID:        s.Cluster,
			Role:             s.Role,
			ManufacturerCode: zcl.ManufCodeInvalid,
			Storage:          s.Role == zcl.RoleServer,
			Required:         slices.Clone(s.Required),
		}
		if s.Storage != nil {
			slot.Storage = *s.Storage
		}
		if s.ManufacturerCode != nil {
			slot.ManufacturerCode = *s.ManufacturerCode
		}
		if slot.Storage {
			def := reg.Get(s.Cluster)
			if def == nil {
				return nil, fmt.Errorf("%w: %w: template %q cluster 0x%04X", profile.ErrConfig, ErrUnknownCluster, d.Name, s.Cluster)
			}
			reportable += def.ReportableCount()
		}
		switch s.Role {
		case zcl.RoleServer:
			t.InClusterNum++
		case zcl.RoleClient:
			t.OutClusterNum++
		}
		t.Manifest = append(t.Manifest, slot)
	}
	t.ReportAttrCount = reportable
	if d.ReportAttrCount != nil {
		t.ReportAttrCount = *d.ReportAttrCount
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// File is the content of one template file.
type File struct {
	Clusters  []zcl.ClusterDef     `json:"clusters,omitempty"`
	Templates []TemplateDefinition `json:"templates,omitempty"`
}

// ParseFile decodes and validates a template file. The format follows the
// extension of name: .yaml, .yml or .json.
func ParseFile(name string, data []byte) (*File, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, name, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		var err error
		if data, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, name, err)
		}
	case ".json":
	default:
		return nil, fmt.Errorf("%w: %s: unsupported extension", ErrInvalidFile, name)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile template schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, name, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, name, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, name, err)
	}
	return &f, nil
}

// Library holds device templates keyed by name.
type Library struct {
	mu        sync.RWMutex
	templates map[string]*profile.Template
	logger    *slog.Logger
}

// NewLibrary creates a library holding the built-in HA templates.
func NewLibrary(logger *slog.Logger) *Library {
	l := &Library{
		templates: make(map[string]*profile.Template),
		logger:    logger.With("component", "devicedb"),
	}
	for _, t := range ha.Templates() {
		l.templates[t.Name] = t
	}
	return l
}

// Add validates t and inserts it. Names are unique.
func (l *Library) Add(t *profile.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.templates[t.Name]; ok {
		return fmt.Errorf("%w: %w: %q", profile.ErrConfig, ErrDuplicateTemplate, t.Name)
	}
	l.templates[t.Name] = t
	return nil
}

// AddDefinition converts d against reg and adds it.
func (l *Library) AddDefinition(d TemplateDefinition, reg *zcl.Registry) error {
	t, err := d.Template(reg)
	if err != nil {
		return err
	}
	return l.Add(t)
}

// Lookup finds a template by name.
func (l *Library) Lookup(name string) (*profile.Template, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.templates[name]
	return t, ok
}

// Templates returns all templates ordered by name.
func (l *Library) Templates() []*profile.Template {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*profile.Template, 0, len(l.templates))
	for _, t := range l.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of templates.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.templates)
}

// LoadDir reads all *.yaml, *.yml and *.json files from dir. Custom
// clusters of every file are registered into registry before any template
// is converted, so templates may use clusters declared in another file.
// A missing or empty directory is not an error.
func (l *Library) LoadDir(dir string, registry *zcl.Registry) (int, error) {
	var matches []string
	for _, pattern := range []string{"*.yaml", "*.yml", "*.json"} {
		m, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return 0, fmt.Errorf("glob templates dir: %w", err)
		}
		matches = append(matches, m...)
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		l.logger.Info("no template files found", "dir", dir)
		return 0, nil
	}

	files := make([]*File, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
		f, err := ParseFile(filepath.Base(path), data)
		if err != nil {
			return 0, err
		}
		for _, c := range f.Clusters {
			registry.Register(c)
		}
		files = append(files, f)
	}

	added := 0
	for i, f := range files {
		for _, d := range f.Templates {
			if err := l.AddDefinition(d, registry); err != nil {
				return added, fmt.Errorf("%s: %w", filepath.Base(matches[i]), err)
			}
			added++
		}
		l.logger.Info("loaded template file", "path", filepath.Base(matches[i]),
			"clusters", len(f.Clusters), "templates", len(f.Templates))
	}
	l.logger.Info("template library loaded", "files", len(matches), "templates", l.Len())
	return added, nil
}
