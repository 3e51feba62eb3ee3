package net

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service remote pen devices look for.
const ServiceType = "_slideink._tcp"

// Advertise announces the pen server on the local network. Call Shutdown on
// the returned server to withdraw the announcement.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"SlideInk presenter", "path=/pen"}
	service, err := mdns.NewMDNSService(
		host,        // instance name
		ServiceType, // service type
		"",          // domain, empty means .local
		"",          // hostname, empty means the OS hostname
		port,
		[]net.IP{firstIPv4()},
		info,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for presenters for up to timeout and calls found with the
// host:port of each one.
func Browse(timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mdns query: %w", err)
	}
	return nil
}

// firstIPv4 returns the first non-loopback IPv4 address of an interface
// that is up, or 127.0.0.1.
func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}
