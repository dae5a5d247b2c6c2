package topology

import (
	"bytes"
	"os"
	"sort"

	"github.com/topolab-network/topolab/pkg/util"
)

// Document is the portable single-document form of a Topology. It is the
// only wire and file contract this package exposes; the visualizer and the
// live switch controller both consume it.
type Document struct {
	Name        string                `json:"name" yaml:"name"`
	Devices     map[string]*DeviceDoc `json:"devices" yaml:"devices"`
	Connections []*ConnectionDoc      `json:"connections" yaml:"connections"`
}

// DeviceDoc is the serialized form of one device.
type DeviceDoc struct {
	ID          string              `json:"id" yaml:"id"`
	Type        string              `json:"type" yaml:"type"`
	Name        string              `json:"name" yaml:"name"`
	Interfaces  []string            `json:"interfaces" yaml:"interfaces"`
	Connections map[string]*PeerDoc `json:"connections" yaml:"connections"`
	Properties  map[string]any      `json:"properties" yaml:"properties"`
}

// PeerDoc is the far end of a connected interface; a nil entry in
// DeviceDoc.Connections marks an unconnected slot.
type PeerDoc struct {
	Device    string `json:"device" yaml:"device"`
	Interface string `json:"interface" yaml:"interface"`
}

// ConnectionDoc is one serialized connection record.
type ConnectionDoc struct {
	Device1    string `json:"device1" yaml:"device1"`
	Interface1 string `json:"interface1" yaml:"interface1"`
	Device2    string `json:"device2" yaml:"device2"`
	Interface2 string `json:"interface2" yaml:"interface2"`
}

// Document renders the topology as its portable document form. Connection
// records keep creation order; device interface lists keep insertion order.
func (t *Topology) Document() *Document {
	devices := make(map[string]*DeviceDoc, len(t.devices))
	for id, d := range t.devices {
		conns := make(map[string]*PeerDoc, len(d.ifaceOrder))
		for _, iface := range d.ifaceOrder {
			if p := d.ifaces[iface]; p != nil {
				conns[iface] = &PeerDoc{Device: p.Device, Interface: p.Interface}
			} else {
				conns[iface] = nil
			}
		}
		devices[id] = &DeviceDoc{
			ID:          d.ID,
			Type:        string(d.Kind),
			Name:        d.Name,
			Interfaces:  d.Interfaces(),
			Connections: conns,
			Properties:  d.encodeProperties(),
		}
	}

	conns := make([]*ConnectionDoc, 0, len(t.connections))
	for _, c := range t.connections {
		conns = append(conns, &ConnectionDoc{
			Device1:    c.Device1,
			Interface1: c.Interface1,
			Device2:    c.Device2,
			Interface2: c.Interface2,
		})
	}

	return &Document{Name: t.Name, Devices: devices, Connections: conns}
}

// FromDocument reconstructs a Topology from its document form. Devices are
// rebuilt first, with every serialized property replayed over the
// constructor defaults; connections are then replayed in document order and
// fail exactly the way Connect would, so a document carrying a duplicated
// pair or an occupied interface is rejected.
func FromDocument(doc *Document) (*Topology, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	t := New(doc.Name)

	ids := make([]string, 0, len(doc.Devices))
	for id := range doc.Devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		dd := doc.Devices[id]
		var d *Device
		switch Kind(dd.Type) {
		case KindSwitch:
			d = loadSwitch(id, dd)
		case KindHost:
			d = loadHost(id, dd)
		}
		for key, value := range dd.Properties {
			d.SetProperty(key, value)
		}
		if err := t.AddDevice(d); err != nil {
			return nil, err
		}
	}

	for _, c := range doc.Connections {
		if err := t.Connect(c.Device1, c.Interface1, c.Device2, c.Interface2); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// loadSwitch rebuilds a switch device. The port count is inferred from the
// serialized interface list; when the list carries names the port1..portN
// convention wouldn't produce, those exact names are restored instead so the
// connection replay can find them.
func loadSwitch(id string, dd *DeviceDoc) *Device {
	switchType := SwitchTypeL2
	if s, ok := toString(dd.Properties[PropSwitchType]); ok {
		switchType = s
	}

	d := NewSwitch(id, dd.Name, len(dd.Interfaces), switchType)
	if !sliceEqual(d.Interfaces(), dd.Interfaces) {
		d.ifaceOrder = nil
		d.ifaces = make(map[string]*Peer)
		for _, iface := range dd.Interfaces {
			d.AddInterface(iface)
		}
		d.Switch.VLANs[DefaultVLANID] = &VLAN{Name: "default", Ports: d.Interfaces()}
	}
	return d
}

// loadHost rebuilds a host device, taking the IP from properties first so
// the constructor contract (MAC synthesis) applies before the property
// replay overwrites any serialized MAC.
func loadHost(id string, dd *DeviceDoc) *Device {
	ip, _ := toString(dd.Properties[PropIPAddress])
	d := NewHost(id, dd.Name, ip)
	for _, iface := range dd.Interfaces {
		d.AddInterface(iface) // no-op for eth0
	}
	return d
}

// validateDocument checks structural integrity before any device is built.
func validateDocument(doc *Document) error {
	var v util.ValidationBuilder

	for id, dd := range doc.Devices {
		if dd == nil {
			v.AddErrorf("device %q: empty entry", id)
			continue
		}
		switch Kind(dd.Type) {
		case KindSwitch, KindHost:
		default:
			v.AddErrorf("device %q: unknown type %q", id, dd.Type)
		}
		if dd.ID != "" && dd.ID != id {
			v.AddErrorf("device %q: entry id %q does not match key", id, dd.ID)
		}
	}

	for i, c := range doc.Connections {
		if c == nil {
			v.AddErrorf("connection %d: empty record", i)
			continue
		}
		if c.Device1 == "" || c.Interface1 == "" || c.Device2 == "" || c.Interface2 == "" {
			v.AddErrorf("connection %d: incomplete endpoints", i)
			continue
		}
		if _, ok := doc.Devices[c.Device1]; !ok {
			v.AddErrorf("connection %d: unknown device %q", i, c.Device1)
		}
		if _, ok := doc.Devices[c.Device2]; !ok {
			v.AddErrorf("connection %d: unknown device %q", i, c.Device2)
		}
	}

	return v.Build("")
}

// SaveFile writes the topology document to path in one buffered write.
// The codec is chosen by file extension (.yaml/.yml for YAML, JSON otherwise).
func (t *Topology) SaveFile(path string) error {
	doc := t.Document()

	var buf bytes.Buffer
	if err := CodecForPath(path).Encode(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}

	util.WithTopology(t.Name).Infof("topology saved to %s", path)
	return nil
}

// ReadDocument reads and decodes a topology document file without
// reconstructing the live Topology.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, util.NewDocumentNotFoundError(path)
		}
		return nil, err
	}

	doc, err := CodecForPath(path).Decode(bytes.NewReader(data))
	if err != nil {
		return nil, util.NewDocumentParseError(path, err.Error())
	}
	return doc, nil
}

// LoadFile reads a topology document file and reconstructs the Topology.
func LoadFile(path string) (*Topology, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}

	t, err := FromDocument(doc)
	if err != nil {
		return nil, err
	}

	util.WithTopology(t.Name).Infof("topology loaded from %s", path)
	return t, nil
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
