// Package controlplane turns switch configuration held in a topology model
// into ordered provisioning plans and drives them through an Engine.
//
// BuildDevicePlan generates a complete plan offline (no device interrogation
// needed); Apply delivers a plan step by step against any Engine
// implementation.
package controlplane

import (
	"context"
	"fmt"
	"sort"

	"github.com/topolab-network/topolab/pkg/topology"
	"github.com/topolab-network/topolab/pkg/util"
)

// Engine is the device-facing side of the control plane. Implementations
// talk to real or simulated switches; the planner never does.
type Engine interface {
	CreateVLAN(ctx context.Context, device, vlanID, name string) error
	AddPortToVLAN(ctx context.Context, device, port, vlanID string) error
	SetSTPPriority(ctx context.Context, device string, priority int) error
	AddStaticRoute(ctx context.Context, device, network, nextHop string, metric int) error
}

// Step is a single provisioning action within a plan.
type Step struct {
	Op       string `json:"op"`
	Device   string `json:"device"`
	VLANID   string `json:"vlan_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Port     string `json:"port,omitempty"`
	Network  string `json:"network,omitempty"`
	NextHop  string `json:"next_hop,omitempty"`
	Metric   int    `json:"metric,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

// Step operation names. They match the Engine method they drive.
const (
	OpCreateVLAN     = "create-vlan"
	OpAddPortToVLAN  = "add-port-to-vlan"
	OpSetSTPPriority = "set-stp-priority"
	OpAddStaticRoute = "add-static-route"
)

// Plan is an ordered list of provisioning steps for one device.
type Plan struct {
	Device string `json:"device"`
	Steps  []Step `json:"steps"`
}

func (p *Plan) add(s Step) {
	s.Device = p.Device
	p.Steps = append(p.Steps, s)
}

// String summarizes a step for logs and plan listings.
func (s Step) String() string {
	switch s.Op {
	case OpCreateVLAN:
		return fmt.Sprintf("%s: vlan %s (%s)", s.Op, s.VLANID, s.Name)
	case OpAddPortToVLAN:
		return fmt.Sprintf("%s: %s -> vlan %s", s.Op, s.Port, s.VLANID)
	case OpSetSTPPriority:
		return fmt.Sprintf("%s: priority %d", s.Op, s.Priority)
	case OpAddStaticRoute:
		return fmt.Sprintf("%s: %s via %s metric %d", s.Op, s.Network, s.NextHop, s.Metric)
	}
	return s.Op
}

// BuildDevicePlan generates the provisioning plan for one switch without
// delivering it. Useful for inspection, serialization, or deferred delivery.
// Returns an error for host devices, which carry no switch configuration.
func BuildDevicePlan(t *topology.Topology, deviceID string) (*Plan, error) {
	d, err := t.Device(deviceID)
	if err != nil {
		return nil, err
	}
	if d.Kind != topology.KindSwitch {
		return nil, util.NewKindMismatchError(deviceID, string(topology.KindSwitch), string(d.Kind))
	}

	plan := &Plan{Device: deviceID}
	cfg := d.Switch

	// VLANs first: create each VLAN, then its port memberships.
	vlanIDs := make([]string, 0, len(cfg.VLANs))
	for id := range cfg.VLANs {
		vlanIDs = append(vlanIDs, id)
	}
	sort.Strings(vlanIDs)
	for _, id := range vlanIDs {
		v := cfg.VLANs[id]
		plan.add(Step{Op: OpCreateVLAN, VLANID: id, Name: v.Name})
		for _, port := range v.Ports {
			plan.add(Step{Op: OpAddPortToVLAN, VLANID: id, Port: port})
		}
	}

	if cfg.STPPriority > 0 {
		plan.add(Step{Op: OpSetSTPPriority, Priority: cfg.STPPriority})
	}

	// Static routes, only present on l3 switches.
	dests := make([]string, 0, len(cfg.RoutingTable))
	for dest := range cfg.RoutingTable {
		dests = append(dests, dest)
	}
	sort.Strings(dests)
	for _, dest := range dests {
		r := cfg.RoutingTable[dest]
		plan.add(Step{Op: OpAddStaticRoute, Network: dest, NextHop: r.NextHop, Metric: r.Metric})
	}

	return plan, nil
}

// BuildPlans generates plans for every switch in the topology, ordered by
// device id. Hosts are skipped.
func BuildPlans(t *topology.Topology) ([]*Plan, error) {
	var plans []*Plan
	for _, id := range t.DeviceIDs() {
		d, _ := t.Device(id)
		if d.Kind != topology.KindSwitch {
			continue
		}
		plan, err := BuildDevicePlan(t, id)
		if err != nil {
			return nil, fmt.Errorf("planning %s: %w", id, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// Apply delivers a plan step by step. It stops at the first failing step and
// reports how many steps were applied before the failure.
func Apply(ctx context.Context, engine Engine, plan *Plan) (int, error) {
	for i, s := range plan.Steps {
		var err error
		switch s.Op {
		case OpCreateVLAN:
			err = engine.CreateVLAN(ctx, s.Device, s.VLANID, s.Name)
		case OpAddPortToVLAN:
			err = engine.AddPortToVLAN(ctx, s.Device, s.Port, s.VLANID)
		case OpSetSTPPriority:
			err = engine.SetSTPPriority(ctx, s.Device, s.Priority)
		case OpAddStaticRoute:
			err = engine.AddStaticRoute(ctx, s.Device, s.Network, s.NextHop, s.Metric)
		default:
			err = fmt.Errorf("unknown plan op %q", s.Op)
		}
		if err != nil {
			return i, fmt.Errorf("step %d (%s): %w", i+1, s, err)
		}
	}
	util.WithDevice(plan.Device).Infof("Applied plan: %d steps", len(plan.Steps))
	return len(plan.Steps), nil
}
