package net

import (
	"fmt"
	"log"
	"net"
)

// PenURL returns the websocket address remote pen devices should dial.
func PenURL(port int) string {
	ip, err := OutgoingIP()
	if err != nil {
		log.Printf("[REMOTE] Could not determine local IP: %v", err)
		ip = "127.0.0.1"
	}
	return fmt.Sprintf("ws://%s/pen", net.JoinHostPort(ip, fmt.Sprint(port)))
}

// OutgoingIP finds the preferred local IP address to share with devices.
func OutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// offline networks: take the first interface address instead
		return interfaceIP()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

func interfaceIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String(), nil
		}
	}
	log.Println("[REMOTE] No suitable local IP found, falling back to loopback")
	return "127.0.0.1", nil
}
