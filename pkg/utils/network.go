package utils

import (
	"net"

	"github.com/dustin/go-humanize"
)

// FormatSize renders size in IEC units, e.g. "1.5 KiB".
func FormatSize(size uint64) string {
	return humanize.IBytes(size)
}

// LANAddresses lists the non-loopback IPv4 addresses of the host's interfaces.
// Interfaces that fail to report their addresses are skipped.
func LANAddresses() ([]net.IP, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var addrs []net.Addr
	for _, i := range interfaces {
		a, err := i.Addrs()
		if err != nil {
			continue
		}
		addrs = append(addrs, a...)
	}

	return filterIPv4(addrs), nil
}

func filterIPv4(addrs []net.Addr) []net.IP {
	var ips []net.IP
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}

		if ip != nil && !ip.IsLoopback() && ip.To4() != nil {
			ips = append(ips, ip)
		}
	}

	return ips
}
