package net

import (
	"fmt"
	"log"
	"net"
)

// OutgoingIP returns the address other machines on the LAN can reach this
// one at. The UDP dial sends nothing; it only makes the kernel pick a route.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return addr.IP.String()
		}
	}
	return interfaceIP()
}

// interfaceIP covers networks without a default route.
func interfaceIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		log.Printf("[NET] Listing interfaces: %v", err)
		return "127.0.0.1"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4().String()
			}
		}
	}
	log.Println("[NET] No LAN address found, share link uses loopback")
	return "127.0.0.1"
}

// WebSocketURL is the address a browser connects to for a board.
func WebSocketURL(host string, port int) string {
	return fmt.Sprintf("ws://%s/ws", net.JoinHostPort(host, fmt.Sprint(port)))
}
