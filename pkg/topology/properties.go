package topology

// Property keys with fixed typed fields. Any other key goes in Device.Extra.
const (
	PropSwitchType   = "switch_type"
	PropVLANs        = "vlans"
	PropSTPPriority  = "stp_priority"
	PropRoutingTable = "routing_table"
	PropIPInterfaces = "ip_interfaces"
	PropIPAddress    = "ip_address"
	PropSubnetMask   = "subnet_mask"
	PropMACAddress   = "mac_address"
)

// SetProperty stores a device property. Keys with fixed typed fields are
// dispatched into the kind config when the value has the expected shape;
// everything else lands in the free-form Extra map. There is no schema
// validation beyond that shape dispatch.
func (d *Device) SetProperty(key string, value any) {
	if d.setTyped(key, value) {
		delete(d.Extra, key)
		return
	}
	d.Extra[key] = value
}

// setTyped routes a known key into the typed config. Returns false when the
// key is unknown for this kind or the value shape doesn't fit.
func (d *Device) setTyped(key string, value any) bool {
	switch d.Kind {
	case KindSwitch:
		if d.Switch == nil {
			return false
		}
		switch key {
		case PropSwitchType:
			s, ok := toString(value)
			if ok {
				d.Switch.SwitchType = s
				// a switch promoted to l3 needs the maps the l3
				// constructor would have seeded
				if s == SwitchTypeL3 {
					if d.Switch.RoutingTable == nil {
						d.Switch.RoutingTable = make(map[string]*Route)
					}
					if d.Switch.IPInterfaces == nil {
						d.Switch.IPInterfaces = make(map[string]string)
					}
				}
			}
			return ok
		case PropVLANs:
			vlans, ok := decodeVLANs(value)
			if ok {
				d.Switch.VLANs = vlans
			}
			return ok
		case PropSTPPriority:
			n, ok := toInt(value)
			if ok {
				d.Switch.STPPriority = n
			}
			return ok
		case PropRoutingTable:
			routes, ok := decodeRoutes(value)
			if ok {
				d.Switch.RoutingTable = routes
			}
			return ok
		case PropIPInterfaces:
			m, ok := toStringMap(value)
			if ok {
				d.Switch.IPInterfaces = m
			}
			return ok
		}
	case KindHost:
		if d.Host == nil {
			return false
		}
		switch key {
		case PropIPAddress:
			s, ok := toString(value)
			if ok {
				d.Host.IPAddress = s
			}
			return ok
		case PropSubnetMask:
			s, ok := toString(value)
			if ok {
				d.Host.SubnetMask = s
			}
			return ok
		case PropMACAddress:
			s, ok := toString(value)
			if ok {
				d.Host.MACAddress = s
			}
			return ok
		}
	}
	return false
}

// Property returns a device property. Known keys read from the typed config;
// unknown keys fall back to Extra. ok is false for unset values.
func (d *Device) Property(key string) (any, bool) {
	switch d.Kind {
	case KindSwitch:
		if d.Switch != nil {
			switch key {
			case PropSwitchType:
				return d.Switch.SwitchType, true
			case PropVLANs:
				return d.Switch.VLANs, true
			case PropSTPPriority:
				if d.Switch.STPPriority == 0 {
					return nil, false
				}
				return d.Switch.STPPriority, true
			case PropRoutingTable:
				if d.Switch.RoutingTable == nil {
					return nil, false
				}
				return d.Switch.RoutingTable, true
			case PropIPInterfaces:
				if d.Switch.IPInterfaces == nil {
					return nil, false
				}
				return d.Switch.IPInterfaces, true
			}
		}
	case KindHost:
		if d.Host != nil {
			switch key {
			case PropIPAddress:
				if d.Host.IPAddress == "" {
					return nil, false
				}
				return d.Host.IPAddress, true
			case PropSubnetMask:
				if d.Host.SubnetMask == "" {
					return nil, false
				}
				return d.Host.SubnetMask, true
			case PropMACAddress:
				if d.Host.MACAddress == "" {
					return nil, false
				}
				return d.Host.MACAddress, true
			}
		}
	}
	v, ok := d.Extra[key]
	return v, ok
}

// encodeProperties renders all set properties as a generic map, the form the
// serialized document carries. Typed fields encode canonically; Extra entries
// are carried as-is and win on key collision so malformed-but-replayed
// property shapes survive a round trip.
func (d *Device) encodeProperties() map[string]any {
	props := make(map[string]any)

	switch d.Kind {
	case KindSwitch:
		if d.Switch != nil {
			props[PropSwitchType] = d.Switch.SwitchType
			props[PropVLANs] = encodeVLANs(d.Switch.VLANs)
			if d.Switch.STPPriority != 0 {
				props[PropSTPPriority] = d.Switch.STPPriority
			}
			if d.Switch.RoutingTable != nil {
				props[PropRoutingTable] = encodeRoutes(d.Switch.RoutingTable)
			}
			if d.Switch.IPInterfaces != nil {
				props[PropIPInterfaces] = encodeStringMap(d.Switch.IPInterfaces)
			}
		}
	case KindHost:
		if d.Host != nil {
			if d.Host.IPAddress != "" {
				props[PropIPAddress] = d.Host.IPAddress
			}
			if d.Host.SubnetMask != "" {
				props[PropSubnetMask] = d.Host.SubnetMask
			}
			if d.Host.MACAddress != "" {
				props[PropMACAddress] = d.Host.MACAddress
			}
		}
	}

	for k, v := range d.Extra {
		props[k] = v
	}
	return props
}

func encodeVLANs(vlans map[string]*VLAN) map[string]any {
	out := make(map[string]any, len(vlans))
	for id, v := range vlans {
		ports := make([]string, len(v.Ports))
		copy(ports, v.Ports)
		out[id] = map[string]any{
			"name":  v.Name,
			"ports": ports,
		}
	}
	return out
}

func encodeRoutes(routes map[string]*Route) map[string]any {
	out := make(map[string]any, len(routes))
	for dest, r := range routes {
		out[dest] = map[string]any{
			"next_hop": r.NextHop,
			"metric":   r.Metric,
		}
	}
	return out
}

func encodeStringMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ============================================================================
// Shape coercion
//
// JSON decodes numbers as float64 and lists/maps as []any / map[string]any;
// YAML decodes numbers as int. These helpers accept every shape the two
// codecs and direct Go callers produce.
// ============================================================================

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func toStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out, true
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}

func toAnyMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func toStringMap(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, e := range m {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func decodeVLANs(v any) (map[string]*VLAN, bool) {
	if typed, ok := v.(map[string]*VLAN); ok {
		out := make(map[string]*VLAN, len(typed))
		for id, vl := range typed {
			ports := make([]string, len(vl.Ports))
			copy(ports, vl.Ports)
			out[id] = &VLAN{Name: vl.Name, Ports: ports}
		}
		return out, true
	}

	raw, ok := toAnyMap(v)
	if !ok {
		return nil, false
	}
	out := make(map[string]*VLAN, len(raw))
	for id, e := range raw {
		entry, ok := toAnyMap(e)
		if !ok {
			return nil, false
		}
		name, _ := toString(entry["name"])
		ports, ok := toStringSlice(entry["ports"])
		if !ok {
			return nil, false
		}
		out[id] = &VLAN{Name: name, Ports: ports}
	}
	return out, true
}

func decodeRoutes(v any) (map[string]*Route, bool) {
	if typed, ok := v.(map[string]*Route); ok {
		out := make(map[string]*Route, len(typed))
		for dest, r := range typed {
			out[dest] = &Route{NextHop: r.NextHop, Metric: r.Metric}
		}
		return out, true
	}

	raw, ok := toAnyMap(v)
	if !ok {
		return nil, false
	}
	out := make(map[string]*Route, len(raw))
	for dest, e := range raw {
		entry, ok := toAnyMap(e)
		if !ok {
			return nil, false
		}
		nextHop, ok := toString(entry["next_hop"])
		if !ok {
			return nil, false
		}
		metric, ok := toInt(entry["metric"])
		if !ok {
			return nil, false
		}
		out[dest] = &Route{NextHop: nextHop, Metric: metric}
	}
	return out, true
}
