package web

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
)

type deviceSummary struct {
	Name        string            `json:"name"`
	Handle      string            `json:"handle"`
	Fingerprint string            `json:"fingerprint"`
	Endpoints   []endpointSummary `json:"endpoints"`
}

type endpointSummary struct {
	Endpoint      uint8    `json:"endpoint"`
	ProfileID     uint16   `json:"profile_id"`
	DeviceID      uint16   `json:"device_id"`
	DeviceVersion uint8    `json:"device_version"`
	InClusters    []uint16 `json:"in_clusters"`
	OutClusters   []uint16 `json:"out_clusters"`
}

type endpointView struct {
	endpointSummary
	ClusterCount    int           `json:"cluster_count"`
	Clusters        []clusterView `json:"clusters"`
	ReportAttrCount int           `json:"reportable_attr_count"`
	ReportingUsed   int           `json:"reporting_used"`
	CVCAttrCount    int           `json:"cvc_attr_count"`
}

type clusterView struct {
	ClusterID        uint16          `json:"cluster_id"`
	Name             string          `json:"name,omitempty"`
	Role             zcl.Role        `json:"role"`
	ManufacturerCode uint16          `json:"manufacturer_code"`
	AttributeCount   int             `json:"attribute_count"`
	Placeholder      bool            `json:"placeholder,omitempty"`
	Attributes       []attributeView `json:"attributes,omitempty"`
}

type attributeView struct {
	ID     uint16 `json:"id"`
	Name   string `json:"name,omitempty"`
	Type   string `json:"type"`
	Access uint8  `json:"access"`
	Value  any    `json:"value,omitempty"`
	Raw    string `json:"raw,omitempty"`
	Error  string `json:"error,omitempty"`
}

type reportingView struct {
	Capacity int              `json:"capacity"`
	Used     int              `json:"used"`
	Slots    []reportSlotView `json:"slots"`
}

type reportSlotView struct {
	ClusterID        uint16   `json:"cluster_id"`
	Role             zcl.Role `json:"role"`
	AttrID           uint16   `json:"attr_id"`
	Type             string   `json:"type"`
	MinInterval      uint16   `json:"min_interval"`
	MaxInterval      uint16   `json:"max_interval"`
	ReportableChange string   `json:"reportable_change,omitempty"`
	LastReported     string   `json:"last_reported,omitempty"`
	Pending          bool     `json:"pending"`
}

type transitionView struct {
	ClusterID      uint16 `json:"cluster_id"`
	AttrID         uint16 `json:"attr_id"`
	Value          int64  `json:"value"`
	Target         int64  `json:"target"`
	TransitionTime uint16 `json:"transition_time"`
	Elapsed        uint16 `json:"elapsed"`
}

type templateView struct {
	Name            string     `json:"name"`
	ProfileID       uint16     `json:"profile_id"`
	DeviceID        uint16     `json:"device_id"`
	DeviceVersion   uint8      `json:"device_version"`
	InClusterNum    int        `json:"in_cluster_num"`
	OutClusterNum   int        `json:"out_cluster_num"`
	ReportAttrCount int        `json:"reportable_attr_count"`
	CVCAttrCount    int        `json:"cvc_attr_count"`
	Manifest        []slotView `json:"manifest,omitempty"`
}

type slotView struct {
	ClusterID        uint16   `json:"cluster_id"`
	Name             string   `json:"name,omitempty"`
	Role             zcl.Role `json:"role"`
	ManufacturerCode uint16   `json:"manufacturer_code"`
	Storage          bool     `json:"storage"`
	Required         []uint16 `json:"required,omitempty"`
}

type sendFrameRequest struct {
	Cluster uint16 `json:"cluster"`
	Frame   string `json:"frame"`
}

type sendFrameResponse struct {
	Frame string `json:"frame,omitempty"`
}

func summarizeEndpoint(ep *profile.EndpointDescriptor) endpointSummary {
	es := endpointSummary{Endpoint: ep.ID, ProfileID: ep.ProfileID}
	if sd := ep.Simple; sd != nil {
		es.DeviceID = sd.DeviceID
		es.DeviceVersion = sd.DeviceVersion
		es.InClusters = sd.InClusters
		es.OutClusters = sd.OutClusters
	}
	return es
}

func (s *Server) summarizeDevice(d *profile.DeviceContext) deviceSummary {
	ds := deviceSummary{
		Name:      d.Name,
		Handle:    d.Handle.String(),
		Endpoints: make([]endpointSummary, 0, len(d.Endpoints)),
	}
	if encoded, err := profile.EncodeSnapshot(d); err == nil {
		ds.Fingerprint = profile.Fingerprint(encoded)
	} else {
		s.logger.Warn("snapshot encode failed", "device", d.Name, "err", err)
	}
	for _, ep := range d.Endpoints {
		ds.Endpoints = append(ds.Endpoints, summarizeEndpoint(ep))
	}
	return ds
}

func (s *Server) clusterName(id uint16) string {
	if s.registry == nil {
		return ""
	}
	if def := s.registry.Get(id); def != nil {
		return def.Name
	}
	return ""
}

func (s *Server) viewEndpoint(ep *profile.EndpointDescriptor) endpointView {
	v := endpointView{
		endpointSummary: summarizeEndpoint(ep),
		ClusterCount:    ep.ClusterCount,
		Clusters:        make([]clusterView, 0, len(ep.Clusters)),
		ReportAttrCount: ep.ReportAttrCount,
		ReportingUsed:   ep.Reporting.Used(),
		CVCAttrCount:    ep.CVCAttrCount,
	}
	for i := range ep.Clusters {
		c := &ep.Clusters[i]
		cv := clusterView{
			ClusterID:        c.ClusterID,
			Name:             s.clusterName(c.ClusterID),
			Role:             c.Role,
			ManufacturerCode: c.ManufacturerCode,
			AttributeCount:   c.AttributeCount,
			Placeholder:      c.IsPlaceholder(),
		}
		for j := range c.Attributes {
			cv.Attributes = append(cv.Attributes, s.viewAttribute(c.ClusterID, &c.Attributes[j]))
		}
		v.Clusters = append(v.Clusters, cv)
	}
	return v
}

func (s *Server) viewAttribute(clusterID uint16, a *profile.Attribute) attributeView {
	av := attributeView{ID: a.ID, Type: zcl.TypeName(a.Type), Access: a.Access}
	if s.registry != nil {
		if def, ok := s.registry.Attribute(clusterID, a.ID); ok {
			av.Name = def.Name
		}
	}
	if a.Storage == nil {
		return av
	}
	raw, err := a.Storage.Load()
	if err != nil {
		av.Error = err.Error()
		return av
	}
	if raw == nil {
		return av
	}
	av.Raw = hex.EncodeToString(raw)
	if val, _, err := zcl.DecodeValue(a.Type, raw); err == nil {
		av.Value = val
	}
	return av
}

func (s *Server) viewTemplate(t *profile.Template) templateView {
	v := templateView{
		Name:            t.Name,
		ProfileID:       t.ProfileID,
		DeviceID:        t.DeviceID,
		DeviceVersion:   t.DeviceVersion,
		InClusterNum:    t.InClusterNum,
		OutClusterNum:   t.OutClusterNum,
		ReportAttrCount: t.ReportAttrCount,
		CVCAttrCount:    t.CVCAttrCount,
	}
	for _, slot := range t.Manifest {
		v.Manifest = append(v.Manifest, slotView{
			ClusterID:        slot.ClusterID,
			Name:             s.clusterName(slot.ClusterID),
			Role:             slot.Role,
			ManufacturerCode: slot.ManufacturerCode,
			Storage:          slot.Storage,
			Required:         slot.Required,
		})
	}
	return v
}

// lookupEndpoint resolves the {name} and {ep} path values, writing the error
// response itself when either is unknown.
func (s *Server) lookupEndpoint(w http.ResponseWriter, r *http.Request) (*profile.DeviceContext, *profile.EndpointDescriptor, bool) {
	d, err := s.router.Device(r.PathValue("name"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "device not found")
		return nil, nil, false
	}
	id, err := strconv.ParseUint(r.PathValue("ep"), 10, 8)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid endpoint")
		return nil, nil, false
	}
	ep := d.Endpoint(uint8(id))
	if ep == nil {
		s.writeError(w, http.StatusNotFound, "endpoint not found")
		return nil, nil, false
	}
	return d, ep, true
}

func (s *Server) handleAPIListDevices(w http.ResponseWriter, r *http.Request) {
	devices := s.router.Devices()
	out := make([]deviceSummary, 0, len(devices))
	for _, d := range devices {
		out = append(out, s.summarizeDevice(d))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIGetDevice(w http.ResponseWriter, r *http.Request) {
	d, err := s.router.Device(r.PathValue("name"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "device not found")
		return
	}
	s.writeJSON(w, http.StatusOK, s.summarizeDevice(d))
}

func (s *Server) handleAPIGetEndpoint(w http.ResponseWriter, r *http.Request) {
	_, ep, ok := s.lookupEndpoint(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.viewEndpoint(ep))
}

func (s *Server) handleAPISimpleDescriptor(w http.ResponseWriter, r *http.Request) {
	_, ep, ok := s.lookupEndpoint(w, r)
	if !ok {
		return
	}
	data, err := ep.Simple.MarshalBinary()
	if err != nil {
		s.logger.Error("encode simple descriptor", "endpoint", ep.ID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"endpoint": ep.ID,
		"length":   len(data),
		"hex":      hex.EncodeToString(data),
	})
}

func (s *Server) handleAPIReporting(w http.ResponseWriter, r *http.Request) {
	_, ep, ok := s.lookupEndpoint(w, r)
	if !ok {
		return
	}
	v := reportingView{
		Capacity: ep.Reporting.Count(),
		Used:     ep.Reporting.Used(),
		Slots:    []reportSlotView{},
	}
	for _, slot := range ep.Reporting.Table() {
		if slot.Flags&profile.ReportSlotUsed == 0 {
			continue
		}
		v.Slots = append(v.Slots, reportSlotView{
			ClusterID:        slot.ClusterID,
			Role:             slot.Role,
			AttrID:           slot.AttrID,
			Type:             zcl.TypeName(slot.AttrType),
			MinInterval:      slot.MinInterval,
			MaxInterval:      slot.MaxInterval,
			ReportableChange: hex.EncodeToString(slot.ReportableChange),
			LastReported:     hex.EncodeToString(slot.LastReported),
			Pending:          slot.Flags&profile.ReportSlotPending != 0,
		})
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleAPITransitions(w http.ResponseWriter, r *http.Request) {
	_, ep, ok := s.lookupEndpoint(w, r)
	if !ok {
		return
	}
	out := []transitionView{}
	for _, slot := range ep.CVC.Active() {
		out = append(out, transitionView{
			ClusterID:      slot.ClusterID,
			AttrID:         slot.AttrID,
			Value:          slot.Value(),
			Target:         slot.Target,
			TransitionTime: slot.TransitionTime,
			Elapsed:        slot.Elapsed,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"capacity":    ep.CVC.Count(),
		"transitions": out,
	})
}

func (s *Server) handleAPISendFrame(w http.ResponseWriter, r *http.Request) {
	d, ep, ok := s.lookupEndpoint(w, r)
	if !ok {
		return
	}

	var req sendFrameRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	frame, err := hex.DecodeString(req.Frame)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "frame must be hex")
		return
	}

	resp, err := s.router.Handle(ep.ID, req.Cluster, frame)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, profile.ErrNoEndpoint) {
			status = http.StatusNotFound
		}
		s.logger.Debug("frame rejected", "device", d.Name, "endpoint", ep.ID, "err", err)
		s.writeError(w, status, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, sendFrameResponse{Frame: hex.EncodeToString(resp)})
}

func (s *Server) handleAPIListTemplates(w http.ResponseWriter, r *http.Request) {
	templates := s.library.Templates()
	out := make([]templateView, 0, len(templates))
	for _, t := range templates {
		v := s.viewTemplate(t)
		v.Manifest = nil
		out = append(out, v)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := s.library.Lookup(r.PathValue("name"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "template not found")
		return
	}
	s.writeJSON(w, http.StatusOK, s.viewTemplate(t))
}

func (s *Server) handleAPIListClusters(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		s.writeJSON(w, http.StatusOK, []zcl.ClusterDef{})
		return
	}
	s.writeJSON(w, http.StatusOK, s.registry.All())
}
