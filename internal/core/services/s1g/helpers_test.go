package s1g

import "github.com/lcalzada-xor/s1gap/internal/core/domain"

// fakeHW is a fixed channel table.
type fakeHW struct {
	mode *domain.HardwareMode
}

func (f *fakeHW) ActiveMode() (*domain.HardwareMode, bool) {
	return f.mode, f.mode != nil
}

func (f *fakeHW) LookupChannel(mode *domain.HardwareMode, n int) (*domain.ChannelDescriptor, bool) {
	return mode.Channel(n)
}

func s1gMode(chans ...domain.ChannelDescriptor) *fakeHW {
	return &fakeHW{mode: &domain.HardwareMode{Mode: domain.ModeIEEE80211AH, Channels: chans}}
}

func ch(n int, bw domain.BandwidthMask) domain.ChannelDescriptor {
	return domain.ChannelDescriptor{Number: n, FreqKHz: 902000 + 500*n, AllowedBW: bw}
}

// recordingSink captures station events.
type recordingSink struct {
	updated []domain.StationSnapshot
	removed []string
}

func (r *recordingSink) StationUpdated(s domain.StationSnapshot) { r.updated = append(r.updated, s) }
func (r *recordingSink) StationRemoved(addr string)              { r.removed = append(r.removed, addr) }
