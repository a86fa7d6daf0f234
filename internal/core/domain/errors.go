package domain

import "errors"

// Domain Errors for interfaces and stations.
var (
	ErrInvalidInterfaceName = errors.New("invalid interface name")
	ErrInvalidMAC           = errors.New("invalid MAC address")
	ErrInvalidChannel       = errors.New("invalid channel number")
	ErrStationNotFound      = errors.New("station not found")
)
