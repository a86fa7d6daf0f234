package hwmode

import (
	"fmt"
	"os"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// channelTableFile is the on-disk channel table format:
//
//	modes:
//	  - mode: ah
//	    channels:
//	      - {chan: 36, freq_khz: 920000, widths: [1]}
type channelTableFile struct {
	Modes []struct {
		Mode     string `yaml:"mode"`
		Channels []struct {
			Chan     int   `yaml:"chan"`
			FreqKHz  int   `yaml:"freq_khz"`
			Widths   []int `yaml:"widths"`
			Disabled bool  `yaml:"disabled"`
		} `yaml:"channels"`
	} `yaml:"modes"`
}

var widthBits = map[int]domain.BandwidthMask{
	1:  domain.BW1MHz,
	2:  domain.BW2MHz,
	4:  domain.BW4MHz,
	8:  domain.BW8MHz,
	16: domain.BW16MHz,
}

// LoadYAML reads a channel table from path.
func LoadYAML(path string) ([]domain.HardwareMode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read channel table: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a channel table. Unknown widths are ignored so the
// resolver reports them as unsupported.
func ParseYAML(data []byte) ([]domain.HardwareMode, error) {
	var f channelTableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse channel table: %w", err)
	}

	modes := make([]domain.HardwareMode, 0, len(f.Modes))
	for _, m := range f.Modes {
		mt, err := domain.ParseHwMode(m.Mode)
		if err != nil {
			return nil, err
		}
		hm := domain.HardwareMode{Mode: mt}
		for _, c := range m.Channels {
			var bw domain.BandwidthMask
			for _, w := range c.Widths {
				bw |= widthBits[w]
			}
			hm.Channels = append(hm.Channels, domain.ChannelDescriptor{
				Number:    c.Chan,
				FreqKHz:   c.FreqKHz,
				AllowedBW: bw,
				Disabled:  c.Disabled,
			})
		}
		modes = append(modes, hm)
	}
	return modes, nil
}
