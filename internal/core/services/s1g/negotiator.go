package s1g

import (
	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/telemetry"
)

// Negotiate builds the S1G capabilities to advertise to peer. Feature bits
// are advertised only when both sides support them. The supported channel
// width and the MCS/NSS set are the peer's own values: the link width is
// reduced to the minimum later by radio control.
func Negotiate(local, peer domain.S1GCapabilities) domain.S1GCapabilities {
	var out domain.S1GCapabilities
	localInfo, peerInfo := local.CapInfo(), peer.CapInfo()
	for i := range localInfo {
		out[i] = localInfo[i] & peerInfo[i]
	}
	out.SetSupportedChannelWidth(peer.SupportedChannelWidth())
	out.SetMCSNSS(peer.MCSNSS())

	telemetry.NegotiationsTotal.Inc()
	return out
}
