package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Interface      string `yaml:"interface"`
	HwMode         string `yaml:"hw_mode"`
	Channel        int    `yaml:"channel"`
	S1GOperChannel int    `yaml:"s1g_oper_channel"`
	LocalS1GCap    string `yaml:"local_s1g_cap"` // 15 bytes, hex
	ChannelTable   string `yaml:"channel_table"` // YAML channel table; built-in plans when empty
	ReplayPcap     string `yaml:"replay_pcap"`   // management frames fed to the dispatcher at start

	Addr          string `yaml:"addr"`
	DBPath        string `yaml:"db_path"`
	Persistence   bool   `yaml:"persistence"`
	MaxS1GRecords int    `yaml:"max_s1g_records"` // 0 = unlimited

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	ConfigFile string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Interface:   "wlan0",
		HwMode:      "ah",
		Channel:     1,
		Addr:        ":8080",
		DBPath:      getDefaultDBPath(),
		Persistence: true,
		LogLevel:    "info",
	}
}

// Load reads configuration from the environment, the optional YAML file and
// the command line, in increasing order of precedence.
func Load() (*Config, error) {
	return Parse(os.Args[0], os.Args[1:], os.LookupEnv)
}

// Parse is Load with explicit inputs.
func Parse(name string, args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	applyEnv(cfg, lookupEnv)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Path to YAML configuration file")
	fs.StringVar(&cfg.Interface, "i", cfg.Interface, "AP interface name")
	fs.StringVar(&cfg.HwMode, "hw-mode", cfg.HwMode, "Hardware mode (b, g, a, ad, ah)")
	fs.IntVar(&cfg.Channel, "channel", cfg.Channel, "Primary channel")
	fs.IntVar(&cfg.S1GOperChannel, "s1g-oper-channel", cfg.S1GOperChannel, "S1G operating channel (0 = primary)")
	fs.StringVar(&cfg.LocalS1GCap, "s1g-cap", cfg.LocalS1GCap, "Local S1G capabilities (30 hex digits)")
	fs.StringVar(&cfg.ChannelTable, "channel-table", cfg.ChannelTable, "YAML channel table")
	fs.StringVar(&cfg.ReplayPcap, "replay", cfg.ReplayPcap, "pcap of management frames to replay at start")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	fs.BoolVar(&cfg.Persistence, "persist", cfg.Persistence, "Persist station capability records")
	fs.IntVar(&cfg.MaxS1GRecords, "max-s1g-records", cfg.MaxS1GRecords, "Maximum live S1G capability records (0 = unlimited)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Rotating log file (empty = stdout only)")
	debug := fs.Bool("debug", false, "Shorthand for -log-level debug")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// The file sits between env and flags: remember explicit flags, load the
	// file over everything, then re-apply the flags.
	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

	if cfg.ConfigFile != "" {
		if err := loadFile(cfg.ConfigFile, cfg); err != nil {
			return nil, err
		}
		for name, value := range explicit {
			if err := fs.Set(name, value); err != nil {
				return nil, err
			}
		}
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, lookupEnv func(string) (string, bool)) {
	getEnv := func(key string, dst *string) {
		if v, ok := lookupEnv(key); ok {
			*dst = v
		}
	}
	getEnvInt := func(key string, dst *int) {
		if v, ok := lookupEnv(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	getEnv("S1GAP_CONFIG", &cfg.ConfigFile)
	getEnv("S1GAP_INTERFACE", &cfg.Interface)
	getEnv("S1GAP_HW_MODE", &cfg.HwMode)
	getEnvInt("S1GAP_CHANNEL", &cfg.Channel)
	getEnvInt("S1GAP_OPER_CHANNEL", &cfg.S1GOperChannel)
	getEnv("S1GAP_S1G_CAP", &cfg.LocalS1GCap)
	getEnv("S1GAP_CHANNEL_TABLE", &cfg.ChannelTable)
	getEnv("S1GAP_REPLAY", &cfg.ReplayPcap)
	getEnv("S1GAP_ADDR", &cfg.Addr)
	getEnv("S1GAP_DB", &cfg.DBPath)
	getEnvInt("S1GAP_MAX_S1G_RECORDS", &cfg.MaxS1GRecords)
	getEnv("S1GAP_LOG_LEVEL", &cfg.LogLevel)
	getEnv("S1GAP_LOG_FILE", &cfg.LogFile)
	if v, ok := lookupEnv("S1GAP_PERSIST"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Persistence = b
		}
	}
}

var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks values that can be checked without hardware.
func (c *Config) Validate() error {
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.LocalCapabilities(); err != nil {
		return fmt.Errorf("%w: local_s1g_cap: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MaxS1GRecords < 0 {
		return fmt.Errorf("%w: max_s1g_records must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Mode parses HwMode.
func (c *Config) Mode() (domain.HwModeType, error) {
	return domain.ParseHwMode(c.HwMode)
}

// LocalCapabilities parses LocalS1GCap. An empty value is all zeros.
func (c *Config) LocalCapabilities() (domain.S1GCapabilities, error) {
	if c.LocalS1GCap == "" {
		return domain.S1GCapabilities{}, nil
	}
	return domain.ParseS1GCapabilitiesHex(c.LocalS1GCap)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}

// getDefaultDBPath returns the default database path in user's home directory.
// Creates the directory if it doesn't exist.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "s1gap.db"
	}

	dir := filepath.Join(home, ".s1gap")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "s1gap.db"
	}
	return filepath.Join(dir, "s1gap.db")
}
