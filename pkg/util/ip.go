package util

import (
	"encoding/binary"
	"fmt"
	"net"
)

// OffsetAddr returns the IPv4 address at base+offset, carrying across
// octet boundaries. Used to hand out sequential host addresses.
func OffsetAddr(base string, offset int) (string, error) {
	ip := net.ParseIP(base)
	if ip == nil {
		return "", fmt.Errorf("invalid IPv4 address: %s", base)
	}
	ip = ip.To4()
	if ip == nil {
		return "", fmt.Errorf("not an IPv4 address: %s", base)
	}

	v := binary.BigEndian.Uint32(ip)
	v += uint32(offset)

	out := make(net.IP, net.IPv4len)
	binary.BigEndian.PutUint32(out, v)
	return out.String(), nil
}

// IsValidIPv4 reports whether s parses as an IPv4 address.
func IsValidIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}
