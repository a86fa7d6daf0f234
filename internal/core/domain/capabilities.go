package domain

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// S1G Capabilities element layout (element ID 217).
const (
	S1GCapInfoLen      = 10
	S1GMCSNSSLen       = 5
	S1GCapabilitiesLen = S1GCapInfoLen + S1GMCSNSSLen

	s1gChanWidthMask = 0x03
)

var ErrCapabilityLength = errors.New("invalid S1G capabilities length")

// S1GCapabilities is the fixed-size S1G capability record. Bytes 0..9 carry
// the capability information bitfield, bytes 10..14 the supported S1G-MCS
// and NSS set.
type S1GCapabilities [S1GCapabilitiesLen]byte

// CapFlag addresses a single capability bit as byte<<3 | bit.
type CapFlag uint16

func capFlag(byteIdx, bit int) CapFlag {
	return CapFlag(byteIdx<<3 | bit)
}

func (f CapFlag) byteIndex() int { return int(f >> 3) }
func (f CapFlag) mask() byte     { return 1 << (f & 0x07) }

// Capability information flags. Byte 0 bits 0-1 are the supported channel
// width subfield and are not flags.
var (
	CapS1GLong        = capFlag(0, 2)
	CapShortGI1MHz    = capFlag(0, 3)
	CapShortGI2MHz    = capFlag(0, 4)
	CapShortGI4MHz    = capFlag(0, 5)
	CapShortGI8MHz    = capFlag(0, 6)
	CapShortGI16MHz   = capFlag(0, 7)
	CapRxLDPC         = capFlag(1, 0)
	CapTxSTBC         = capFlag(1, 1)
	CapRxSTBC         = capFlag(1, 2)
	CapSUBeamformer   = capFlag(1, 3)
	CapSUBeamformee   = capFlag(1, 4)
	CapTravelingPilot = capFlag(3, 0)
	CapTWTRequester   = capFlag(8, 0)
	CapTWTResponder   = capFlag(8, 1)
)

// S1GCapabilitiesFromBytes copies an exactly-sized record.
func S1GCapabilitiesFromBytes(b []byte) (S1GCapabilities, error) {
	var c S1GCapabilities
	if len(b) != S1GCapabilitiesLen {
		return c, fmt.Errorf("%w: got %d, want %d", ErrCapabilityLength, len(b), S1GCapabilitiesLen)
	}
	copy(c[:], b)
	return c, nil
}

// ParseS1GCapabilitiesHex decodes a hex string such as the local_s1g_cap
// configuration value.
func ParseS1GCapabilitiesHex(s string) (S1GCapabilities, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return S1GCapabilities{}, err
	}
	return S1GCapabilitiesFromBytes(b)
}

// Bytes returns a copy of the wire representation.
func (c S1GCapabilities) Bytes() []byte {
	out := make([]byte, S1GCapabilitiesLen)
	copy(out, c[:])
	return out
}

func (c S1GCapabilities) String() string {
	return hex.EncodeToString(c[:])
}

func (c S1GCapabilities) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *S1GCapabilities) UnmarshalText(text []byte) error {
	parsed, err := ParseS1GCapabilitiesHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SupportedChannelWidth returns the raw 2-bit width subfield of byte 0.
func (c S1GCapabilities) SupportedChannelWidth() uint8 {
	return c[0] & s1gChanWidthMask
}

// SetSupportedChannelWidth replaces the width subfield, keeping the other
// byte 0 flags.
func (c *S1GCapabilities) SetSupportedChannelWidth(v uint8) {
	c[0] = c[0]&^s1gChanWidthMask | v&s1gChanWidthMask
}

// Flag reports whether capability bit f is set.
func (c S1GCapabilities) Flag(f CapFlag) bool {
	i := f.byteIndex()
	if i >= S1GCapInfoLen {
		return false
	}
	return c[i]&f.mask() != 0
}

// SetFlag sets or clears capability bit f. Flags outside the capability
// information field are ignored.
func (c *S1GCapabilities) SetFlag(f CapFlag, on bool) {
	i := f.byteIndex()
	if i >= S1GCapInfoLen {
		return
	}
	if on {
		c[i] |= f.mask()
	} else {
		c[i] &^= f.mask()
	}
}

// MCSNSS returns the supported S1G-MCS and NSS set.
func (c S1GCapabilities) MCSNSS() [S1GMCSNSSLen]byte {
	var m [S1GMCSNSSLen]byte
	copy(m[:], c[S1GCapInfoLen:])
	return m
}

func (c *S1GCapabilities) SetMCSNSS(m [S1GMCSNSSLen]byte) {
	copy(c[S1GCapInfoLen:], m[:])
}

// CapInfo returns the capability information bytes.
func (c S1GCapabilities) CapInfo() [S1GCapInfoLen]byte {
	var info [S1GCapInfoLen]byte
	copy(info[:], c[:S1GCapInfoLen])
	return info
}
