// Package netaddr checks listen addresses and enumerates the host
// addresses clients can reach the mock on.
package netaddr

import (
	"fmt"
	"net"
	"strconv"
)

// Check returns an error if host:port cannot be bound.
func Check(host string, port int) error {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("port %d is not available: %w", port, err)
	}
	_ = ln.Close()
	return nil
}

// Interface is a named IPv4 address.
type Interface struct {
	Name string `json:"name"`
	Addr string `json:"addr"`
}

// ExternalIPv4 lists the IPv4 addresses of interfaces that are up and
// not loopback.
func ExternalIPv4() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	var out []Interface
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		out = append(out, filterIPv4(iface.Name, addrs)...)
	}
	return out, nil
}

func filterIPv4(name string, addrs []net.Addr) []Interface {
	var out []Interface
	for _, a := range addrs {
		var ip net.IP
		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() {
			out = append(out, Interface{Name: name, Addr: ip4.String()})
		}
	}
	return out
}
