// Package capture reads and writes 802.11 management frames in pcap files.
package capture

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

var ErrUnsupportedLinkType = errors.New("unsupported pcap link type")

// FrameHandler receives one raw 802.11 frame.
type FrameHandler func(frame []byte, hasFCS bool) error

// ReadFile hands every 802.11 frame in the pcap at path to fn and returns
// how many were dispatched. Plain 802.11 captures are assumed to carry no
// FCS; for radiotap captures the radiotap flags decide.
func ReadFile(path string, fn FrameHandler) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return Read(f, fn)
}

// Read is ReadFile over an already open stream.
func Read(r io.Reader, fn FrameHandler) (int, error) {
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("pcap header: %w", err)
	}

	linkType := reader.LinkType()
	if linkType != layers.LinkTypeIEEE802_11 && linkType != layers.LinkTypeIEEE80211Radio {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedLinkType, linkType)
	}

	n := 0
	for {
		data, _, err := reader.ReadPacketData()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("pcap record %d: %w", n+1, err)
		}

		frame, hasFCS := data, false
		if linkType == layers.LinkTypeIEEE80211Radio {
			var rt layers.RadioTap
			if err := rt.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
				slog.Debug("capture: bad radiotap header", "error", err)
				continue
			}
			frame, hasFCS = rt.Payload, rt.Flags.FCS()
		}

		if err := fn(frame, hasFCS); err != nil {
			slog.Debug("capture: frame rejected", "error", err)
		}
		n++
	}
}

// Writer records raw 802.11 frames (no FCS) as a LINKTYPE_IEEE802_11 pcap.
type Writer struct {
	w   *pcapgo.Writer
	now func() time.Time
}

// NewWriter writes the pcap file header to w.
func NewWriter(w io.Writer) (*Writer, error) {
	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(65536, layers.LinkTypeIEEE802_11); err != nil {
		return nil, err
	}
	return &Writer{w: pw, now: time.Now}, nil
}

// WriteFrame appends one frame record.
func (w *Writer) WriteFrame(frame []byte) error {
	ci := gopacket.CaptureInfo{
		Timestamp:     w.now(),
		CaptureLength: len(frame),
		Length:        len(frame),
	}
	return w.w.WritePacket(ci, frame)
}
