package mgmt

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/lcalzada-xor/s1gap/internal/adapters/ie"
	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
	"github.com/lcalzada-xor/s1gap/internal/core/services/s1g"
	"github.com/lcalzada-xor/s1gap/internal/core/services/station"
	"github.com/lcalzada-xor/s1gap/internal/telemetry"
)

const (
	dot11HeaderLen = 24
	fcsLen         = 4
)

var (
	ErrMalformedFrame = errors.New("malformed management frame")
	ErrNotManagement  = errors.New("not a management frame")
	ErrUnknownStation = errors.New("frame from unknown station")
)

// Dispatcher decodes management frames and routes the S1G capability
// element to the capability store and negotiator.
type Dispatcher struct {
	Iface     *domain.InterfaceConfig
	Stations  *station.Table
	Store     *s1g.Store
	Responses ports.ResponseSink

	// HasFCS is set when frames carry a trailing FCS (monitor captures).
	// Frames from the driver's management path do not.
	HasFCS bool

	mu sync.Mutex
}

// NewDispatcher creates a Dispatcher for frames without FCS.
func NewDispatcher(iface *domain.InterfaceConfig, stations *station.Table, store *s1g.Store, responses ports.ResponseSink) *Dispatcher {
	return &Dispatcher{
		Iface:     iface,
		Stations:  stations,
		Store:     store,
		Responses: responses,
	}
}

// HandleFrame processes one management frame. Frames are handled one at a
// time, mirroring the single-threaded driver event path.
func (d *Dispatcher) HandleFrame(data []byte) error {
	return d.handle(data, d.HasFCS)
}

// HandleCaptured processes a frame read from a capture, where the presence
// of an FCS is known per frame.
func (d *Dispatcher) HandleCaptured(data []byte, hasFCS bool) error {
	return d.handle(data, hasFCS)
}

func (d *Dispatcher) handle(data []byte, hasFCS bool) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subtype := "unknown"
	defer func() {
		result := telemetry.ResultOK
		if err != nil {
			result = telemetry.ResultDropped
		}
		telemetry.FramesTotal.WithLabelValues(subtype, result).Inc()
	}()

	dot11, packet, err := decode(data, hasFCS)
	if err != nil {
		return err
	}
	subtype = dot11.Type.String()

	switch dot11.Type {
	case layers.Dot11TypeMgmtAuthentication:
		d.Stations.Add(dot11.Address2)
		d.Stations.Update(dot11.Address2, func(sta *domain.StationRecord) {
			sta.Flags |= domain.StaAuth
		})
		return nil

	case layers.Dot11TypeMgmtAssociationReq:
		l, ok := packet.Layer(layers.LayerTypeDot11MgmtAssociationReq).(*layers.Dot11MgmtAssociationReq)
		if !ok {
			return fmt.Errorf("%w: association request body", ErrMalformedFrame)
		}
		return d.handleAssoc(dot11.Address2, l.LayerPayload())

	case layers.Dot11TypeMgmtReassociationReq:
		l, ok := packet.Layer(layers.LayerTypeDot11MgmtReassociationReq).(*layers.Dot11MgmtReassociationReq)
		if !ok {
			return fmt.Errorf("%w: reassociation request body", ErrMalformedFrame)
		}
		return d.handleAssoc(dot11.Address2, l.LayerPayload())

	case layers.Dot11TypeMgmtProbeReq:
		return d.handleProbe(dot11.Address2, dot11.LayerPayload())

	case layers.Dot11TypeMgmtDisassociation:
		d.Stations.Update(dot11.Address2, func(sta *domain.StationRecord) {
			sta.Flags &^= domain.StaAssoc
		})
		return nil

	case layers.Dot11TypeMgmtDeauthentication:
		d.Stations.Remove(dot11.Address2)
		return nil
	}

	slog.Debug("mgmt: ignoring frame", "subtype", subtype, "sa", dot11.Address2.String())
	return nil
}

func decode(data []byte, hasFCS bool) (*layers.Dot11, gopacket.Packet, error) {
	if len(data) < dot11HeaderLen {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrMalformedFrame, len(data))
	}

	buf := data
	if !hasFCS {
		// layers.Dot11 always strips a trailing FCS.
		buf = make([]byte, len(data)+fcsLen)
		copy(buf, data)
	}

	packet := gopacket.NewPacket(buf, layers.LayerTypeDot11, gopacket.Default)
	dot11, ok := packet.Layer(layers.LayerTypeDot11).(*layers.Dot11)
	if !ok {
		return nil, nil, ErrMalformedFrame
	}
	if dot11.Type.MainType() != layers.Dot11TypeMgmt {
		return nil, nil, ErrNotManagement
	}
	return dot11, packet, nil
}

func (d *Dispatcher) handleAssoc(sa net.HardwareAddr, ies []byte) error {
	if _, ok := d.Stations.Get(sa); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStation, sa)
	}

	raw, err := ie.S1GCapabilities(ies)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	var recErr error
	known := d.Stations.Update(sa, func(sta *domain.StationRecord) {
		sta.Flags |= domain.StaAssoc
		recErr = d.Store.Record(sta, raw)
	})
	if !known {
		return fmt.Errorf("%w: %s", ErrUnknownStation, sa)
	}
	if recErr != nil {
		// Non-fatal: the station is associated without a stored record.
		slog.Warn("mgmt: S1G capabilities not stored", "sta", sa.String(), "error", recErr)
	}

	d.advertise(sa, raw)
	return nil
}

func (d *Dispatcher) handleProbe(sa net.HardwareAddr, ies []byte) error {
	raw, err := ie.S1GCapabilities(ies)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if ssid, err := ie.ParseSSID(ies); err == nil {
		slog.Debug("mgmt: probe request", "sa", sa.String(), "ssid", ssid)
	}
	d.advertise(sa, raw)
	return nil
}

func (d *Dispatcher) advertise(sa net.HardwareAddr, raw []byte) {
	if raw == nil || !d.Iface.S1GEnabled || d.Responses == nil {
		return
	}
	peer, err := domain.S1GCapabilitiesFromBytes(raw)
	if err != nil {
		return
	}
	d.Responses.AdvertiseS1G(sa.String(), s1g.Negotiate(d.Iface.LocalS1GCap, peer))
}

// LogResponseSink logs the capabilities that would be advertised.
type LogResponseSink struct{}

func (LogResponseSink) AdvertiseS1G(peer string, caps domain.S1GCapabilities) {
	slog.Debug("mgmt: advertising S1G capabilities", "peer", peer, "s1g_cap", caps.String(),
		"chan_width", caps.SupportedChannelWidth())
}
