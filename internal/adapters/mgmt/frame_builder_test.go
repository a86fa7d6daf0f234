package mgmt

import (
	"net"

	"github.com/lcalzada-xor/s1gap/internal/adapters/ie"
)

var (
	apAddr  = net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x03, 0x00}
	staAddr = net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x00}
)

// Frame control byte 0 for management subtypes.
const (
	fcAssocReq   = 0x00
	fcReassocReq = 0x20
	fcProbeReq   = 0x40
	fcDisassoc   = 0xA0
	fcAuth       = 0xB0
	fcDeauth     = 0xC0
)

// FrameBuilder constructs raw 802.11 management frames (no FCS).
type FrameBuilder struct {
	data []byte
}

func NewFrameBuilder(fc byte, sa net.HardwareAddr) *FrameBuilder {
	h := make([]byte, 24)
	h[0] = fc
	copy(h[4:], apAddr)  // DA
	copy(h[10:], sa)     // SA
	copy(h[16:], apAddr) // BSSID
	return &FrameBuilder{data: h}
}

func (fb *FrameBuilder) Fixed(b ...byte) *FrameBuilder {
	fb.data = append(fb.data, b...)
	return fb
}

func (fb *FrameBuilder) AddIE(id int, body []byte) *FrameBuilder {
	fb.data = append(fb.data, byte(id), byte(len(body)))
	fb.data = append(fb.data, body...)
	return fb
}

func (fb *FrameBuilder) AddSSID(ssid string) *FrameBuilder {
	return fb.AddIE(ie.TagSSID, []byte(ssid))
}

func (fb *FrameBuilder) Bytes() []byte {
	return fb.data
}

func assocReq(sa net.HardwareAddr, s1gCap []byte) []byte {
	fb := NewFrameBuilder(fcAssocReq, sa).
		Fixed(0x01, 0x00, 0x0a, 0x00). // capability info, listen interval
		AddSSID("s1g")
	if s1gCap != nil {
		fb.AddIE(ie.TagS1GCapabilities, s1gCap)
	}
	return fb.Bytes()
}
