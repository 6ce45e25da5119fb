package deploy

import (
	"net"
	"os"
	"strings"
)

// SystemHost resolves the local FQDN from the OS hostname and DNS.
type SystemHost struct{}

// FQDN returns the first dotted name found for the local hostname: the hostname itself,
// its canonical name, then reverse lookups of its addresses. Falls back to the bare hostname.
func (SystemHost) FQDN() (string, error) {
	h, err := os.Hostname()
	if err != nil {
		return "", err
	}
	if strings.Contains(h, ".") {
		return h, nil
	}

	if cname, err := net.LookupCNAME(h); err == nil {
		if c := strings.TrimSuffix(cname, "."); strings.Contains(c, ".") {
			return c, nil
		}
	}

	addrs, err := net.LookupHost(h)
	if err != nil {
		return h, nil
	}
	for _, a := range addrs {
		names, err := net.LookupAddr(a)
		if err != nil {
			continue
		}
		for _, n := range names {
			if n = strings.TrimSuffix(n, "."); strings.Contains(n, ".") {
				return n, nil
			}
		}
	}
	return h, nil
}

func sameHost(a, b string) bool {
	return strings.EqualFold(strings.TrimSuffix(a, "."), strings.TrimSuffix(b, "."))
}
