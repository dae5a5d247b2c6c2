package controlplane

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/topolab-network/topolab/pkg/topology"
	"github.com/topolab-network/topolab/pkg/util"
)

// recordingEngine captures step summaries in delivery order.
type recordingEngine struct {
	calls   []string
	failOn  string
	failErr error
}

func (e *recordingEngine) record(s Step) error {
	if e.failOn != "" && s.Op == e.failOn {
		return e.failErr
	}
	e.calls = append(e.calls, s.Device+" "+s.String())
	return nil
}

func (e *recordingEngine) CreateVLAN(_ context.Context, device, vlanID, name string) error {
	return e.record(Step{Op: OpCreateVLAN, Device: device, VLANID: vlanID, Name: name})
}

func (e *recordingEngine) AddPortToVLAN(_ context.Context, device, port, vlanID string) error {
	return e.record(Step{Op: OpAddPortToVLAN, Device: device, Port: port, VLANID: vlanID})
}

func (e *recordingEngine) SetSTPPriority(_ context.Context, device string, priority int) error {
	return e.record(Step{Op: OpSetSTPPriority, Device: device, Priority: priority})
}

func (e *recordingEngine) AddStaticRoute(_ context.Context, device, network, nextHop string, metric int) error {
	return e.record(Step{Op: OpAddStaticRoute, Device: device, Network: network, NextHop: nextHop, Metric: metric})
}

func configuredTopology(t *testing.T) *topology.Topology {
	t.Helper()
	topo := topology.New("lab")
	if err := topo.AddDevice(topology.NewSwitch("core1", "Core 1", 4, topology.SwitchTypeL3)); err != nil {
		t.Fatal(err)
	}
	if err := topo.AddDevice(topology.NewHost("h1", "Host 1", "192.168.1.10")); err != nil {
		t.Fatal(err)
	}
	if err := topo.ConfigureVLAN("core1", "100", "servers", []string{"port1", "port2"}); err != nil {
		t.Fatal(err)
	}
	if err := topo.ConfigureSTP("core1", 4096); err != nil {
		t.Fatal(err)
	}
	if err := topo.ConfigureRoute("core1", "10.1.0.0/16", "10.0.0.1", 5); err != nil {
		t.Fatal(err)
	}
	return topo
}

func TestBuildDevicePlanOrdering(t *testing.T) {
	topo := configuredTopology(t)

	plan, err := BuildDevicePlan(topo, "core1")
	if err != nil {
		t.Fatalf("BuildDevicePlan: %v", err)
	}
	if plan.Device != "core1" {
		t.Errorf("plan device = %q", plan.Device)
	}

	var ops []string
	for _, s := range plan.Steps {
		ops = append(ops, s.String())
	}
	want := []string{
		"create-vlan: vlan 1 (default)",
		"add-port-to-vlan: port1 -> vlan 1",
		"add-port-to-vlan: port2 -> vlan 1",
		"add-port-to-vlan: port3 -> vlan 1",
		"add-port-to-vlan: port4 -> vlan 1",
		"create-vlan: vlan 100 (servers)",
		"add-port-to-vlan: port1 -> vlan 100",
		"add-port-to-vlan: port2 -> vlan 100",
		"set-stp-priority: priority 4096",
		"add-static-route: 10.1.0.0/16 via 10.0.0.1 metric 5",
	}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("steps = %v\nwant %v", ops, want)
	}
}

func TestBuildDevicePlanRejectsHost(t *testing.T) {
	topo := configuredTopology(t)
	if _, err := BuildDevicePlan(topo, "h1"); !errors.Is(err, util.ErrTypeMismatch) {
		t.Errorf("want ErrTypeMismatch, got %v", err)
	}
	if _, err := BuildDevicePlan(topo, "ghost"); !errors.Is(err, util.ErrDeviceNotFound) {
		t.Errorf("want ErrDeviceNotFound, got %v", err)
	}
}

func TestBuildPlansSkipsHosts(t *testing.T) {
	topo := configuredTopology(t)
	if err := topo.AddDevice(topology.NewSwitch("access1", "Access 1", 2, "")); err != nil {
		t.Fatal(err)
	}

	plans, err := BuildPlans(topo)
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 {
		t.Fatalf("plan count = %d, want 2", len(plans))
	}
	if plans[0].Device != "access1" || plans[1].Device != "core1" {
		t.Errorf("plan order = %s, %s", plans[0].Device, plans[1].Device)
	}
}

func TestApplyDeliversAllSteps(t *testing.T) {
	topo := configuredTopology(t)
	plan, err := BuildDevicePlan(topo, "core1")
	if err != nil {
		t.Fatal(err)
	}

	eng := &recordingEngine{}
	n, err := Apply(context.Background(), eng, plan)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if n != len(plan.Steps) {
		t.Errorf("applied = %d, want %d", n, len(plan.Steps))
	}
	if len(eng.calls) != len(plan.Steps) {
		t.Errorf("engine saw %d calls, want %d", len(eng.calls), len(plan.Steps))
	}
	if eng.calls[0] != "core1 create-vlan: vlan 1 (default)" {
		t.Errorf("first call = %q", eng.calls[0])
	}
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	topo := configuredTopology(t)
	plan, err := BuildDevicePlan(topo, "core1")
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("unreachable")
	eng := &recordingEngine{failOn: OpSetSTPPriority, failErr: boom}
	n, err := Apply(context.Background(), eng, plan)
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped engine error, got %v", err)
	}
	if n != 8 {
		t.Errorf("applied = %d, want 8 steps before the STP failure", n)
	}
	if len(eng.calls) != 8 {
		t.Errorf("engine saw %d calls before failure, want 8", len(eng.calls))
	}
}
