package hwmode

import "github.com/lcalzada-xor/s1gap/internal/core/domain"

// US 902-928 MHz S1G channelization. Channel n is centered at
// 902 MHz + n * 500 kHz.
const (
	usS1GBaseKHz    = 902000
	usS1GSpacingKHz = 500
	usS1GMaxChannel = 51
)

var (
	us4MHzChannels  = map[int]bool{6: true, 14: true, 22: true, 30: true, 38: true, 46: true}
	us8MHzChannels  = map[int]bool{8: true, 24: true, 40: true}
	us16MHzChannels = map[int]bool{16: true}
)

// USS1GPlan returns the US S1G channel table: odd channels are 1MHz, even
// channels 2MHz, with the 4/8/16MHz channels layered on their centers.
func USS1GPlan() domain.HardwareMode {
	mode := domain.HardwareMode{Mode: domain.ModeIEEE80211AH}
	for n := 1; n <= usS1GMaxChannel; n++ {
		var bw domain.BandwidthMask
		if n%2 == 1 {
			bw |= domain.BW1MHz
		} else {
			bw |= domain.BW2MHz
		}
		if us4MHzChannels[n] {
			bw |= domain.BW4MHz
		}
		if us8MHzChannels[n] {
			bw |= domain.BW8MHz
		}
		if us16MHzChannels[n] {
			bw |= domain.BW16MHz
		}
		mode.Channels = append(mode.Channels, domain.ChannelDescriptor{
			Number:    n,
			FreqKHz:   usS1GBaseKHz + n*usS1GSpacingKHz,
			AllowedBW: bw,
		})
	}
	return mode
}

// GenericGMode is a single-channel 2.4GHz mode (channel 1, 2412 MHz).
func GenericGMode() domain.HardwareMode {
	return domain.HardwareMode{
		Mode: domain.ModeIEEE80211G,
		Channels: []domain.ChannelDescriptor{
			{Number: 1, FreqKHz: 2412000},
		},
	}
}
