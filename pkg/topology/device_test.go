package topology

import (
	"regexp"
	"testing"
)

func TestNewSwitchDefaults(t *testing.T) {
	sw := NewSwitch("switch1", "", 0, "")

	if sw.Kind != KindSwitch {
		t.Errorf("kind = %q, want switch", sw.Kind)
	}
	if sw.Name != "switch1" {
		t.Errorf("name should default to id, got %q", sw.Name)
	}

	ifaces := sw.Interfaces()
	if len(ifaces) != DefaultPortCount {
		t.Fatalf("port count = %d, want %d", len(ifaces), DefaultPortCount)
	}
	if ifaces[0] != "port1" || ifaces[len(ifaces)-1] != "port24" {
		t.Errorf("ports should be port1..port24, got %q..%q", ifaces[0], ifaces[len(ifaces)-1])
	}

	if sw.Switch == nil {
		t.Fatal("switch config should be set")
	}
	if sw.Switch.SwitchType != SwitchTypeL2 {
		t.Errorf("switch type should default to l2, got %q", sw.Switch.SwitchType)
	}

	vlan, ok := sw.Switch.VLANs[DefaultVLANID]
	if !ok {
		t.Fatal("VLAN 1 should be seeded")
	}
	if vlan.Name != "default" {
		t.Errorf("VLAN 1 name = %q, want default", vlan.Name)
	}
	if len(vlan.Ports) != DefaultPortCount {
		t.Errorf("VLAN 1 should contain all %d ports, got %d", DefaultPortCount, len(vlan.Ports))
	}

	if sw.Switch.RoutingTable != nil || sw.Switch.IPInterfaces != nil {
		t.Error("l2 switch should not carry routing maps")
	}
}

func TestNewSwitchL3(t *testing.T) {
	sw := NewSwitch("core1", "Core", 8, SwitchTypeL3)

	if len(sw.Interfaces()) != 8 {
		t.Errorf("port count = %d, want 8", len(sw.Interfaces()))
	}
	if sw.Switch.RoutingTable == nil {
		t.Error("l3 switch should start with an empty routing table")
	}
	if sw.Switch.IPInterfaces == nil {
		t.Error("l3 switch should start with an empty IP-interface map")
	}
	if len(sw.Switch.RoutingTable) != 0 {
		t.Error("routing table should start empty")
	}
}

func TestNewHost(t *testing.T) {
	h := NewHost("host1", "Host 1", "10.0.0.5")

	if h.Kind != KindHost {
		t.Errorf("kind = %q, want host", h.Kind)
	}
	ifaces := h.Interfaces()
	if len(ifaces) != 1 || ifaces[0] != "eth0" {
		t.Errorf("host should have a single eth0 interface, got %v", ifaces)
	}
	if h.Host.IPAddress != "10.0.0.5" {
		t.Errorf("ip = %q, want 10.0.0.5", h.Host.IPAddress)
	}

	macPattern := regexp.MustCompile(`^02:00:00:[0-9a-f]{2}:[0-9a-f]{2}:[0-9a-f]{2}$`)
	if !macPattern.MatchString(h.Host.MACAddress) {
		t.Errorf("MAC %q should match the locally-administered pattern", h.Host.MACAddress)
	}
}

func TestNewHostWithoutIP(t *testing.T) {
	h := NewHost("host1", "", "")
	if h.Host.IPAddress != "" {
		t.Error("host without ip should have no address")
	}
	if h.Host.MACAddress != "" {
		t.Error("host without ip should not synthesize a MAC")
	}
}

func TestAddInterfaceIdempotent(t *testing.T) {
	h := NewHost("host1", "", "")
	h.AddInterface("eth1")
	h.AddInterface("eth1") // duplicate is a no-op, not an error

	ifaces := h.Interfaces()
	if len(ifaces) != 2 {
		t.Fatalf("interface count = %d, want 2: %v", len(ifaces), ifaces)
	}
}

func TestAvailableInterfaceFirstFit(t *testing.T) {
	sw := NewSwitch("switch1", "", 3, "")

	name, ok := sw.AvailableInterface()
	if !ok || name != "port1" {
		t.Errorf("first available should be port1, got %q (%v)", name, ok)
	}

	sw.setPeer("port1", &Peer{Device: "x", Interface: "y"})
	name, ok = sw.AvailableInterface()
	if !ok || name != "port2" {
		t.Errorf("after port1 occupied, available should be port2, got %q", name)
	}

	sw.setPeer("port2", &Peer{Device: "x", Interface: "y"})
	sw.setPeer("port3", &Peer{Device: "x", Interface: "y"})
	if _, ok := sw.AvailableInterface(); ok {
		t.Error("fully occupied switch should report no available interface")
	}
}

func TestSetPropertyTypedDispatch(t *testing.T) {
	sw := NewSwitch("switch1", "", 4, "")

	sw.SetProperty(PropSTPPriority, 4096)
	if sw.Switch.STPPriority != 4096 {
		t.Errorf("stp_priority should land in the typed field, got %d", sw.Switch.STPPriority)
	}

	// JSON-shaped value (float64, []any) coerces into the typed field
	sw.SetProperty(PropVLANs, map[string]any{
		"10": map[string]any{"name": "users", "ports": []any{"port1", "port2"}},
	})
	vlan, ok := sw.Switch.VLANs["10"]
	if !ok {
		t.Fatal("vlans property should replace the typed VLAN map")
	}
	if vlan.Name != "users" || len(vlan.Ports) != 2 {
		t.Errorf("vlan 10 = %+v, want users with 2 ports", vlan)
	}

	// Unknown keys go to the extension map
	sw.SetProperty("rack_location", "r12-u3")
	if sw.Extra["rack_location"] != "r12-u3" {
		t.Error("unknown key should land in Extra")
	}
	if _, hit := sw.Extra[PropSTPPriority]; hit {
		t.Error("typed keys should not shadow into Extra")
	}
}

func TestSetPropertyPromotesSwitchToL3(t *testing.T) {
	sw := NewSwitch("switch1", "", 4, "")
	if sw.Switch.RoutingTable != nil {
		t.Fatal("l2 switch should start without a routing table")
	}

	sw.SetProperty(PropSwitchType, SwitchTypeL3)
	if sw.Switch.SwitchType != SwitchTypeL3 {
		t.Fatalf("switch type = %q, want l3", sw.Switch.SwitchType)
	}
	if sw.Switch.RoutingTable == nil {
		t.Error("promotion to l3 should seed an empty routing table")
	}
	if sw.Switch.IPInterfaces == nil {
		t.Error("promotion to l3 should seed an empty IP-interface map")
	}
}

func TestPropertyLookup(t *testing.T) {
	h := NewHost("host1", "", "10.0.0.9")

	v, ok := h.Property(PropIPAddress)
	if !ok || v != "10.0.0.9" {
		t.Errorf("Property(ip_address) = %v (%v)", v, ok)
	}

	if _, ok := h.Property(PropSubnetMask); ok {
		t.Error("unset subnet mask should report ok=false")
	}
	if _, ok := h.Property("nonexistent"); ok {
		t.Error("unknown unset key should report ok=false")
	}

	h.SetProperty("owner", "netops")
	if v, ok := h.Property("owner"); !ok || v != "netops" {
		t.Errorf("Property(owner) = %v (%v), want netops", v, ok)
	}
}
