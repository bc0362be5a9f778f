//go:build !no_mqtt

package mqtt

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"zigbee-ha-profile/internal/events"
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
)

// message is one MQTT publication.
type message struct {
	Topic    string
	Payload  []byte
	Retained bool
}

// devicePayload is published retained at <prefix>/devices/<name>.
type devicePayload struct {
	Name        string  `json:"name"`
	Handle      string  `json:"handle"`
	Fingerprint string  `json:"fingerprint"`
	Endpoints   []uint8 `json:"endpoints"`
}

// endpointPayload is published retained at <prefix>/devices/<name>/<ep>.
type endpointPayload struct {
	Device string `json:"device"`
	profile.EndpointSnapshot
	SimpleDescriptor string `json:"simple_descriptor"`
	ReportingUsed    int    `json:"reporting_used"`
}

// reportPayload is published at <prefix>/devices/<name>/<ep>/report.
type reportPayload struct {
	Cluster   uint16   `json:"cluster"`
	Role      zcl.Role `json:"role"`
	Attribute uint16   `json:"attribute"`
	Type      string   `json:"type"`
	Value     any      `json:"value,omitempty"`
	Raw       string   `json:"raw"`
}

// frameMessage carries a ZCL frame over <prefix>/devices/<name>/<ep>/zcl.
type frameMessage struct {
	Cluster uint16 `json:"cluster"`
	Frame   string `json:"frame"`
	Error   string `json:"error,omitempty"`
}

func deviceTopic(prefix, name string) string {
	return prefix + "/devices/" + name
}

func endpointTopic(prefix, name string, ep uint8) string {
	return deviceTopic(prefix, name) + "/" + strconv.Itoa(int(ep))
}

// deviceMessages builds the retained descriptor messages of d.
func deviceMessages(prefix string, d *profile.DeviceContext) ([]message, error) {
	encoded, err := profile.EncodeSnapshot(d)
	if err != nil {
		return nil, err
	}
	dp := devicePayload{
		Name:        d.Name,
		Handle:      d.Handle.String(),
		Fingerprint: profile.Fingerprint(encoded),
		Endpoints:   make([]uint8, 0, len(d.Endpoints)),
	}
	msgs := make([]message, 0, len(d.Endpoints)+1)
	for _, ep := range d.Endpoints {
		dp.Endpoints = append(dp.Endpoints, ep.ID)
		simple, err := ep.Simple.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("endpoint %d simple descriptor: %w", ep.ID, err)
		}
		payload, err := json.Marshal(endpointPayload{
			Device:           d.Name,
			EndpointSnapshot: profile.SnapshotEndpoint(ep),
			SimpleDescriptor: hex.EncodeToString(simple),
			ReportingUsed:    ep.Reporting.Used(),
		})
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, message{Topic: endpointTopic(prefix, d.Name, ep.ID), Payload: payload, Retained: true})
	}
	payload, err := json.Marshal(dp)
	if err != nil {
		return nil, err
	}
	return append([]message{{Topic: deviceTopic(prefix, d.Name), Payload: payload, Retained: true}}, msgs...), nil
}

// reportMessage builds the report published when an attribute becomes due.
func reportMessage(prefix string, c events.AttributeChange) message {
	rp := reportPayload{
		Cluster:   c.ClusterID,
		Role:      c.Role,
		Attribute: c.AttrID,
		Type:      zcl.TypeName(c.Type),
		Raw:       hex.EncodeToString(c.Value),
	}
	if v, _, err := zcl.DecodeValue(c.Type, c.Value); err == nil {
		rp.Value = v
	}
	return message{Topic: endpointTopic(prefix, c.Device, c.Endpoint) + "/report", Payload: mustJSON(rp)}
}

// parseFrameTopic splits <prefix>/devices/<name>/<ep>/zcl.
func parseFrameTopic(prefix, topic string) (string, uint8, bool) {
	rest, ok := strings.CutPrefix(topic, prefix+"/devices/")
	if !ok {
		return "", 0, false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[2] != "zcl" || parts[0] == "" {
		return "", 0, false
	}
	ep, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return "", 0, false
	}
	return parts[0], uint8(ep), true
}

func mustJSON(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
