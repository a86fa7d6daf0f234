// Command ap-mgmt-fuzzer replays recorded management frames against a
// minimal AP with one pre-associated station.
//
// Usage: ap-mgmt-fuzzer [-m] [-d] [-w out.pcap] <file>
//
// With -m the file holds multiple frames, each prefixed by a 16-bit big
// endian length.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/s1gap/internal/adapters/capture"
	"github.com/lcalzada-xor/s1gap/internal/adapters/hwmode"
	"github.com/lcalzada-xor/s1gap/internal/adapters/mgmt"
	"github.com/lcalzada-xor/s1gap/internal/adapters/replay"
	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/services/s1g"
	"github.com/lcalzada-xor/s1gap/internal/core/services/station"
	"github.com/lcalzada-xor/s1gap/internal/logging"
	"github.com/lcalzada-xor/s1gap/internal/telemetry"
)

// fuzzStation is pre-associated so association frames from it are accepted.
var fuzzStation = net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x00}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ap-mgmt-fuzzer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	multi := fs.Bool("m", false, "Input holds multiple length-prefixed frames")
	debug := fs.Bool("d", false, "Debug logging")
	pcapOut := fs.String("w", "", "Also write the replayed frames to this pcap file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: ap-mgmt-fuzzer [-m] [-d] [-w out.pcap] <file>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger, closer, err := logging.Setup(stdout, logging.Options{Level: level})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closer.Close()
	logger = logger.With("run_id", uuid.NewString())

	h, err := newHarness()
	if err != nil {
		logger.Error("harness setup failed", "error", err)
		return 1
	}

	handle := h.dispatcher.HandleFrame
	if *pcapOut != "" {
		f, err := os.Create(*pcapOut)
		if err != nil {
			logger.Error("could not create pcap", "path", *pcapOut, "error", err)
			return 1
		}
		defer f.Close()
		w, err := capture.NewWriter(f)
		if err != nil {
			logger.Error("could not write pcap header", "error", err)
			return 1
		}
		handle = func(frame []byte) error {
			if err := w.WriteFrame(frame); err != nil {
				logger.Warn("pcap write failed", "error", err)
			}
			return h.dispatcher.HandleFrame(frame)
		}
	}

	n, err := replay.ReplayFile(fs.Arg(0), *multi, handle)
	if err != nil {
		logger.Error("replay failed", "error", err)
		return 1
	}
	logger.Info("replay done", "frames", n, "stations", h.stations.Len())
	return 0
}

type harness struct {
	iface      *domain.InterfaceConfig
	stations   *station.Table
	dispatcher *mgmt.Dispatcher
}

// newHarness brings up a 2.4GHz g-mode interface on channel 1 and adds the
// fuzz station as associated with WMM.
func newHarness() (*harness, error) {
	telemetry.InitMetrics()

	hw := hwmode.NewStaticProvider(hwmode.GenericGMode())
	if err := hw.SetActive(domain.ModeIEEE80211G); err != nil {
		return nil, err
	}

	iface, err := domain.NewInterfaceConfig("wlan0", domain.ModeIEEE80211G, 1, 0)
	if err != nil {
		return nil, err
	}
	if err := s1g.NewInitializer(s1g.NewResolver(hw)).Init(iface); err != nil {
		return nil, err
	}

	store := s1g.NewStore(nil, nil)
	stations := station.NewTable(store)
	stations.Add(fuzzStation)
	stations.Update(fuzzStation, func(sta *domain.StationRecord) {
		sta.Flags |= domain.StaAssoc | domain.StaWMM
	})

	return &harness{
		iface:      iface,
		stations:   stations,
		dispatcher: mgmt.NewDispatcher(iface, stations, store, mgmt.LogResponseSink{}),
	}, nil
}
