package topology

import (
	"sort"

	"github.com/topolab-network/topolab/pkg/util"
)

// DefaultSubnetMask is applied when AssignHostIP is called without a mask.
const DefaultSubnetMask = "255.255.255.0"

// Connection is one unordered point-to-point link record between two device
// interfaces. The record and the two interface slots it joins are kept
// mutually consistent by the Topology operations.
type Connection struct {
	Device1    string
	Interface1 string
	Device2    string
	Interface2 string
}

// matches reports whether c joins the same unordered endpoint pair.
func (c Connection) matches(d1, i1, d2, i2 string) bool {
	if c.Device1 == d1 && c.Interface1 == i1 && c.Device2 == d2 && c.Interface2 == i2 {
		return true
	}
	return c.Device1 == d2 && c.Interface1 == i2 && c.Device2 == d1 && c.Interface2 == i1
}

// Topology owns a collection of devices keyed by id and the connections
// between their interfaces. Every operation validates fully before mutating,
// so a failed call leaves the topology unchanged. The container is not safe
// for concurrent mutation; callers sharing one across goroutines must
// serialize access themselves.
type Topology struct {
	Name        string
	devices     map[string]*Device
	connections []Connection
}

// New creates an empty topology.
func New(name string) *Topology {
	if name == "" {
		name = "Default Topology"
	}
	return &Topology{
		Name:    name,
		devices: make(map[string]*Device),
	}
}

// AddDevice attaches a standalone device. Device ids are identity: a
// colliding id is a hard failure, unlike the idempotent AddInterface.
func (t *Topology) AddDevice(d *Device) error {
	if _, ok := t.devices[d.ID]; ok {
		return util.NewDuplicateDeviceError(d.ID)
	}
	t.devices[d.ID] = d
	util.WithTopology(t.Name).Debugf("added device %s", d.ID)
	return nil
}

// RemoveDevice disconnects every live interface of the device, then deletes
// it. No connection record or peer slot referencing the id survives.
func (t *Topology) RemoveDevice(id string) error {
	d, ok := t.devices[id]
	if !ok {
		return util.NewDeviceNotFoundError(id)
	}

	for _, iface := range d.ConnectedInterfaces() {
		peer, _ := d.Peer(iface)
		if err := t.Disconnect(id, iface, peer.Device, peer.Interface); err != nil {
			return err
		}
	}

	delete(t.devices, id)
	util.WithTopology(t.Name).Debugf("removed device %s", id)
	return nil
}

// Device returns the device with the given id.
func (t *Topology) Device(id string) (*Device, error) {
	d, ok := t.devices[id]
	if !ok {
		return nil, util.NewDeviceNotFoundError(id)
	}
	return d, nil
}

// DeviceIDs returns all device ids in sorted order.
func (t *Topology) DeviceIDs() []string {
	ids := make([]string, 0, len(t.devices))
	for id := range t.devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Devices returns all devices ordered by id.
func (t *Topology) Devices() []*Device {
	out := make([]*Device, 0, len(t.devices))
	for _, id := range t.DeviceIDs() {
		out = append(out, t.devices[id])
	}
	return out
}

// DeviceCount returns the number of devices.
func (t *Topology) DeviceCount() int {
	return len(t.devices)
}

// Connections returns a copy of the connection records in creation order.
func (t *Topology) Connections() []Connection {
	out := make([]Connection, len(t.connections))
	copy(out, t.connections)
	return out
}

// ConnectionCount returns the number of connection records.
func (t *Topology) ConnectionCount() int {
	return len(t.connections)
}

// Connect joins two device interfaces. Both named slots must exist and be
// empty; on success both slots hold reciprocal peer references and exactly
// one connection record is inserted.
func (t *Topology) Connect(device1, iface1, device2, iface2 string) error {
	d1, ok := t.devices[device1]
	if !ok {
		return util.NewDeviceNotFoundError(device1)
	}
	d2, ok := t.devices[device2]
	if !ok {
		return util.NewDeviceNotFoundError(device2)
	}

	p1, ok := d1.Peer(iface1)
	if !ok {
		return util.NewInterfaceNotFoundError(device1, iface1)
	}
	p2, ok := d2.Peer(iface2)
	if !ok {
		return util.NewInterfaceNotFoundError(device2, iface2)
	}

	if p1 != nil {
		return util.NewAlreadyConnectedError(device1, iface1)
	}
	if p2 != nil {
		return util.NewAlreadyConnectedError(device2, iface2)
	}

	d1.setPeer(iface1, &Peer{Device: device2, Interface: iface2})
	d2.setPeer(iface2, &Peer{Device: device1, Interface: iface1})
	t.connections = append(t.connections, Connection{
		Device1:    device1,
		Interface1: iface1,
		Device2:    device2,
		Interface2: iface2,
	})

	util.WithTopology(t.Name).Debugf("connected %s:%s to %s:%s", device1, iface1, device2, iface2)
	return nil
}

// Disconnect severs the link between two interfaces. The interfaces must be
// connected to exactly each other; on success both slots are cleared and the
// matching connection record is removed.
func (t *Topology) Disconnect(device1, iface1, device2, iface2 string) error {
	d1, ok := t.devices[device1]
	if !ok {
		return util.NewDeviceNotFoundError(device1)
	}
	d2, ok := t.devices[device2]
	if !ok {
		return util.NewDeviceNotFoundError(device2)
	}

	p1, ok := d1.Peer(iface1)
	if !ok {
		return util.NewInterfaceNotFoundError(device1, iface1)
	}
	if _, ok := d2.Peer(iface2); !ok {
		return util.NewInterfaceNotFoundError(device2, iface2)
	}

	if p1 == nil || p1.Device != device2 || p1.Interface != iface2 {
		return util.NewConnectionMismatchError(device1, iface1, device2, iface2)
	}

	d1.clearPeer(iface1)
	d2.clearPeer(iface2)
	for i, c := range t.connections {
		if c.matches(device1, iface1, device2, iface2) {
			t.connections = append(t.connections[:i], t.connections[i+1:]...)
			break
		}
	}

	util.WithTopology(t.Name).Debugf("disconnected %s:%s from %s:%s", device1, iface1, device2, iface2)
	return nil
}

// AssignHostIP sets the IP address and subnet mask properties of a host.
// An empty mask selects DefaultSubnetMask.
func (t *Topology) AssignHostIP(hostID, ip, mask string) error {
	d, ok := t.devices[hostID]
	if !ok {
		return util.NewDeviceNotFoundError(hostID)
	}
	if d.Kind != KindHost {
		return util.NewKindMismatchError(hostID, string(KindHost), string(d.Kind))
	}
	if mask == "" {
		mask = DefaultSubnetMask
	}

	d.Host.IPAddress = ip
	d.Host.SubnetMask = mask
	util.WithDevice(hostID).Debugf("assigned IP %s/%s", ip, mask)
	return nil
}

// ConfigureVLAN merges or overwrites the named VLAN entry on a switch.
func (t *Topology) ConfigureVLAN(switchID, vlanID, name string, ports []string) error {
	sw, err := t.switchByID(switchID)
	if err != nil {
		return err
	}

	memberPorts := make([]string, len(ports))
	copy(memberPorts, ports)
	sw.VLANs[vlanID] = &VLAN{Name: name, Ports: memberPorts}
	util.WithDevice(switchID).Debugf("configured VLAN %s (%s)", vlanID, name)
	return nil
}

// ConfigureSTP sets the spanning-tree priority property on a switch.
func (t *Topology) ConfigureSTP(switchID string, priority int) error {
	sw, err := t.switchByID(switchID)
	if err != nil {
		return err
	}

	sw.STPPriority = priority
	util.WithDevice(switchID).Debugf("configured STP priority %d", priority)
	return nil
}

// ConfigureRoute merges a static routing-table entry on an L3 switch.
// metric <= 0 selects the default metric of 1.
func (t *Topology) ConfigureRoute(switchID, destNetwork, nextHop string, metric int) error {
	d, ok := t.devices[switchID]
	if !ok {
		return util.NewDeviceNotFoundError(switchID)
	}
	if d.Kind != KindSwitch || d.Switch.SwitchType != SwitchTypeL3 {
		got := string(d.Kind)
		if d.Kind == KindSwitch {
			got = d.Switch.SwitchType + " switch"
		}
		return util.NewKindMismatchError(switchID, "l3 switch", got)
	}
	if metric <= 0 {
		metric = 1
	}
	if d.Switch.RoutingTable == nil {
		d.Switch.RoutingTable = make(map[string]*Route)
	}

	d.Switch.RoutingTable[destNetwork] = &Route{NextHop: nextHop, Metric: metric}
	util.WithDevice(switchID).Debugf("configured route to %s via %s", destNetwork, nextHop)
	return nil
}

func (t *Topology) switchByID(id string) (*SwitchConfig, error) {
	d, ok := t.devices[id]
	if !ok {
		return nil, util.NewDeviceNotFoundError(id)
	}
	if d.Kind != KindSwitch {
		return nil, util.NewKindMismatchError(id, string(KindSwitch), string(d.Kind))
	}
	return d.Switch, nil
}
