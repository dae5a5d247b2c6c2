package topology

import (
	"strconv"

	"github.com/topolab-network/topolab/pkg/util"
)

// hostIPBase anchors the sequential addresses handed to generated hosts:
// host N gets hostIPBase + N.
const hostIPBase = "192.168.1.100"

// GenerateSimple builds numSwitches switches connected pairwise in a line,
// with numHosts hosts spread across them. Hosts are assigned to switches in
// contiguous blocks of max(1, numHosts/numSwitches); remainder hosts land on
// the last switch.
func GenerateSimple(numSwitches, numHosts int) (*Topology, error) {
	t := New("Simple Network")
	switches, hosts, err := populateDevices(t, numSwitches, numHosts)
	if err != nil {
		return nil, err
	}
	if err := attachHosts(t, switches, hosts); err != nil {
		return nil, err
	}

	for i := 0; i+1 < len(switches); i++ {
		if err := connectAvailable(t, switches[i], switches[i+1]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// GenerateRing builds the same device set as GenerateSimple but closes the
// switch line into a cycle. Fewer than three switches cannot form a ring:
// one switch gets no switch edges and two get a single edge, never a
// duplicated pair.
func GenerateRing(numSwitches, numHosts int) (*Topology, error) {
	t := New("Ring Network")
	switches, hosts, err := populateDevices(t, numSwitches, numHosts)
	if err != nil {
		return nil, err
	}
	if err := attachHosts(t, switches, hosts); err != nil {
		return nil, err
	}

	ringEdges := len(switches)
	if len(switches) < 3 {
		ringEdges = len(switches) - 1 // degenerate: at most one edge
	}
	for i := 0; i < ringEdges; i++ {
		next := (i + 1) % len(switches)
		if err := connectAvailable(t, switches[i], switches[next]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// GenerateMesh builds the same device set as GenerateSimple and attempts one
// connection for every unordered pair of distinct switches. A pair where
// either switch has run out of interfaces is skipped silently: capacity
// exhaustion degrades the mesh rather than failing the build, so the result
// may carry fewer than n·(n-1)/2 switch edges.
func GenerateMesh(numSwitches, numHosts int) (*Topology, error) {
	t := New("Mesh Network")
	switches, hosts, err := populateDevices(t, numSwitches, numHosts)
	if err != nil {
		return nil, err
	}
	if err := attachHosts(t, switches, hosts); err != nil {
		return nil, err
	}

	for i := 0; i < len(switches); i++ {
		for j := i + 1; j < len(switches); j++ {
			if err := connectAvailable(t, switches[i], switches[j]); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// populateDevices creates switch1..switchN and host1..hostM with sequential
// host addresses, returning the two id lists in creation order.
func populateDevices(t *Topology, numSwitches, numHosts int) (switches, hosts []string, err error) {
	for i := 1; i <= numSwitches; i++ {
		id := "switch" + strconv.Itoa(i)
		if err := t.AddDevice(NewSwitch(id, "Switch "+strconv.Itoa(i), 0, "")); err != nil {
			return nil, nil, err
		}
		switches = append(switches, id)
	}

	for i := 1; i <= numHosts; i++ {
		id := "host" + strconv.Itoa(i)
		ip, err := util.OffsetAddr(hostIPBase, i)
		if err != nil {
			return nil, nil, err
		}
		if err := t.AddDevice(NewHost(id, "Host "+strconv.Itoa(i), ip)); err != nil {
			return nil, nil, err
		}
		hosts = append(hosts, id)
	}
	return switches, hosts, nil
}

// attachHosts distributes hosts over switches in contiguous blocks and
// connects each host to its assigned switch.
func attachHosts(t *Topology, switches, hosts []string) error {
	if len(switches) == 0 || len(hosts) == 0 {
		return nil
	}

	hostsPerSwitch := len(hosts) / len(switches)
	if hostsPerSwitch < 1 {
		hostsPerSwitch = 1
	}

	for i, host := range hosts {
		idx := i / hostsPerSwitch
		if idx > len(switches)-1 {
			idx = len(switches) - 1
		}
		if err := connectAvailable(t, host, switches[idx]); err != nil {
			return err
		}
	}
	return nil
}

// connectAvailable joins the first free interface on each device, first-fit.
// When either side has no free interface the pair is skipped without error.
func connectAvailable(t *Topology, id1, id2 string) error {
	d1, err := t.Device(id1)
	if err != nil {
		return err
	}
	d2, err := t.Device(id2)
	if err != nil {
		return err
	}

	iface1, ok := d1.AvailableInterface()
	if !ok {
		return nil
	}
	iface2, ok := d2.AvailableInterface()
	if !ok {
		return nil
	}
	return t.Connect(id1, iface1, id2, iface2)
}
