package domain

import (
	"net"
	"regexp"
)

var interfaceRegex = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

// maxIfNameLen is IFNAMSIZ minus the terminating NUL.
const maxIfNameLen = 15

// ParseStationAddr parses a colon or dash separated 48-bit station address.
func ParseStationAddr(s string) (net.HardwareAddr, error) {
	hw, err := net.ParseMAC(s)
	if err != nil || len(hw) != 6 {
		return nil, ErrInvalidMAC
	}
	return hw, nil
}

// NormalizeStationAddr returns the canonical lower-case colon form of s.
func NormalizeStationAddr(s string) (string, error) {
	hw, err := ParseStationAddr(s)
	if err != nil {
		return "", err
	}
	return hw.String(), nil
}

// IsValidInterface checks if the string is a safe interface name (alphanumeric + - _)
func IsValidInterface(iface string) bool {
	if len(iface) == 0 || len(iface) > maxIfNameLen {
		return false
	}
	return interfaceRegex.MatchString(iface)
}
