// Package topology implements the in-memory network topology model: devices
// with named interface slots, point-to-point connections between them,
// deterministic topology generators, and a lossless document serialization.
package topology

import (
	"strconv"

	"github.com/topolab-network/topolab/pkg/util"
)

// Kind distinguishes device variants.
type Kind string

const (
	KindSwitch Kind = "switch"
	KindHost   Kind = "host"
)

// Switch type constants
const (
	SwitchTypeL2 = "l2"
	SwitchTypeL3 = "l3"
)

// DefaultPortCount is used when a switch is created without an explicit port count.
const DefaultPortCount = 24

// DefaultVLANID is the VLAN every switch port starts in.
const DefaultVLANID = "1"

// Peer identifies the far end of a connected interface slot. Peer references
// are id+name pairs resolved through the owning Topology, never device
// pointers, so a Topology holds no cyclic references.
type Peer struct {
	Device    string
	Interface string
}

// VLAN is a named broadcast-domain grouping of switch ports.
type VLAN struct {
	Name  string
	Ports []string
}

// Route is one static routing-table entry on an L3 switch, keyed by
// destination CIDR in SwitchConfig.RoutingTable.
type Route struct {
	NextHop string
	Metric  int
}

// SwitchConfig holds the fixed switch-specific configuration fields.
type SwitchConfig struct {
	SwitchType   string           // SwitchTypeL2 or SwitchTypeL3
	VLANs        map[string]*VLAN // vlan id → definition
	STPPriority  int              // 0 means unset
	RoutingTable map[string]*Route // destination CIDR → route; nil unless l3
	IPInterfaces map[string]string // interface/VLAN name → IP config; nil unless l3
}

// HostConfig holds the fixed host-specific configuration fields.
type HostConfig struct {
	IPAddress  string
	SubnetMask string
	MACAddress string
}

// Device is one endpoint in a topology: a fixed set of named,
// individually-connectable interface slots plus kind-specific configuration.
// Exactly one of Switch or Host is non-nil, matching Kind. Ad hoc properties
// that don't map to a fixed field live in Extra.
type Device struct {
	ID   string
	Name string
	Kind Kind

	ifaceOrder []string
	ifaces     map[string]*Peer

	Switch *SwitchConfig
	Host   *HostConfig
	Extra  map[string]any
}

func newDevice(id, name string, kind Kind) *Device {
	if name == "" {
		name = id
	}
	return &Device{
		ID:     id,
		Name:   name,
		Kind:   kind,
		ifaces: make(map[string]*Peer),
		Extra:  make(map[string]any),
	}
}

// NewSwitch creates a switch with ports port1..portN, all seeded into the
// default VLAN. numPorts <= 0 selects DefaultPortCount; an empty switchType
// selects l2. An l3 switch additionally starts with empty routing-table and
// IP-interface maps.
func NewSwitch(id, name string, numPorts int, switchType string) *Device {
	if numPorts <= 0 {
		numPorts = DefaultPortCount
	}
	if switchType == "" {
		switchType = SwitchTypeL2
	}

	d := newDevice(id, name, KindSwitch)
	for i := 1; i <= numPorts; i++ {
		d.AddInterface(portName(i))
	}

	d.Switch = &SwitchConfig{
		SwitchType: switchType,
		VLANs: map[string]*VLAN{
			DefaultVLANID: {Name: "default", Ports: d.Interfaces()},
		},
	}
	if switchType == SwitchTypeL3 {
		d.Switch.RoutingTable = make(map[string]*Route)
		d.Switch.IPInterfaces = make(map[string]string)
	}
	return d
}

// NewHost creates a host with a single eth0 interface. When ip is non-empty
// it is stored and a locally-administered MAC is synthesized for the host.
func NewHost(id, name, ip string) *Device {
	d := newDevice(id, name, KindHost)
	d.AddInterface("eth0")

	d.Host = &HostConfig{}
	if ip != "" {
		d.Host.IPAddress = ip
		d.Host.MACAddress = util.SynthesizeMAC(id)
	}
	return d
}

// AddInterface adds an unconnected interface slot. Adding a name that
// already exists is a no-op, not an error: interfaces are pre-declared
// capacity, unlike identity-bearing devices.
func (d *Device) AddInterface(name string) {
	if _, ok := d.ifaces[name]; ok {
		util.WithDevice(d.ID).Debugf("interface %s already exists", name)
		return
	}
	d.ifaces[name] = nil
	d.ifaceOrder = append(d.ifaceOrder, name)
}

// Interfaces returns the interface names in insertion order.
func (d *Device) Interfaces() []string {
	out := make([]string, len(d.ifaceOrder))
	copy(out, d.ifaceOrder)
	return out
}

// HasInterface reports whether the named interface slot exists.
func (d *Device) HasInterface(name string) bool {
	_, ok := d.ifaces[name]
	return ok
}

// Peer returns the peer reference held by the named slot. ok is false when
// the slot does not exist; a nil Peer with ok true means the slot is empty.
func (d *Device) Peer(name string) (*Peer, bool) {
	p, ok := d.ifaces[name]
	return p, ok
}

// AvailableInterface returns the first unconnected interface in insertion
// order. This first-fit policy is the only interface-selection policy the
// generators use.
func (d *Device) AvailableInterface() (string, bool) {
	for _, name := range d.ifaceOrder {
		if d.ifaces[name] == nil {
			return name, true
		}
	}
	return "", false
}

// ConnectedInterfaces returns the names of all occupied slots in insertion order.
func (d *Device) ConnectedInterfaces() []string {
	var out []string
	for _, name := range d.ifaceOrder {
		if d.ifaces[name] != nil {
			out = append(out, name)
		}
	}
	return out
}

// setPeer and clearPeer mutate slots without validation; only the Topology
// connection operations call them, after all checks have passed.
func (d *Device) setPeer(iface string, p *Peer) {
	d.ifaces[iface] = p
}

func (d *Device) clearPeer(iface string) {
	d.ifaces[iface] = nil
}

func portName(i int) string {
	return "port" + strconv.Itoa(i)
}
