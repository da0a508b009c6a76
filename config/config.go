// Package config loads the settings of a redstone simulation from YAML files
// and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/redstone/ic"
	"github.com/sarchlab/redstone/mech/bridge"
	"github.com/sarchlab/redstone/sim/timing"
	"github.com/sarchlab/redstone/world"
)

// Config is the top level configuration.
type Config struct {
	IC        ICConfig        `yaml:"ic"`
	Bridge    BridgeConfig    `yaml:"bridge"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Recording RecordingConfig `yaml:"recording"`
	Events    EventsConfig    `yaml:"events"`
}

// ICConfig configures the IC mechanic.
type ICConfig struct {
	BreakOnError     bool   `yaml:"break_on_error"`
	KeepLoaded       bool   `yaml:"keep_loaded"`
	ShortHandEnabled bool   `yaml:"shorthand"`
	DebounceTicks    uint64 `yaml:"debounce_ticks"`
	CoalesceTriggers bool   `yaml:"coalesce_triggers"`
	PermissionRoot   string `yaml:"permission_root"`
}

// BridgeConfig configures the bridge mechanic.
type BridgeConfig struct {
	AllowedBlocks []string `yaml:"allowed_blocks"`
	MaxLength     int      `yaml:"max_length"`
}

// MonitorConfig configures the monitoring server.
type MonitorConfig struct {
	Enabled     bool `yaml:"enabled"`
	Port        int  `yaml:"port"`
	OpenBrowser bool `yaml:"open_browser"`
}

// Recording backends.
const (
	BackendSQLite     = "sqlite"
	BackendClickHouse = "clickhouse"
)

// RecordingConfig configures the lifecycle database.
type RecordingConfig struct {
	Enabled    bool             `yaml:"enabled"`
	Backend    string           `yaml:"backend"`
	Path       string           `yaml:"path"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
}

// ClickHouseConfig locates the ClickHouse server used by the clickhouse
// backend.
type ClickHouseConfig struct {
	Addr      string `yaml:"addr"`
	Database  string `yaml:"database"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	BatchSize int    `yaml:"batch_size"`
}

// EventsConfig configures publishing the IC lifecycle to Redis.
type EventsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	RedisAddr string `yaml:"redis_addr"`
	Namespace string `yaml:"namespace"`
}

// Default returns the default configuration.
func Default() Config {
	icConfig := ic.DefaultConfig()
	bridgeSettings := bridge.DefaultSettings()

	blocks := make([]string, 0, len(bridgeSettings.AllowedBlocks))
	for _, m := range bridgeSettings.AllowedBlocks {
		blocks = append(blocks, string(m))
	}

	return Config{
		IC: ICConfig{
			BreakOnError:     icConfig.BreakOnError,
			KeepLoaded:       icConfig.KeepLoaded,
			ShortHandEnabled: icConfig.ShortHandEnabled,
			DebounceTicks:    uint64(icConfig.DebounceTicks),
			CoalesceTriggers: icConfig.CoalesceTriggers,
			PermissionRoot:   icConfig.PermissionRoot,
		},
		Bridge: BridgeConfig{
			AllowedBlocks: blocks,
			MaxLength:     bridgeSettings.MaxLength,
		},
		Recording: RecordingConfig{
			Backend: BackendSQLite,
			ClickHouse: ClickHouseConfig{
				Addr:     "localhost:9000",
				Database: "default",
				Username: "default",
			},
		},
		Events: EventsConfig{
			RedisAddr: "localhost:6379",
			Namespace: "redstone",
		},
	}
}

// Load reads the YAML file at path on top of the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()

	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.IC.PermissionRoot) == "" {
		return fmt.Errorf("ic.permission_root must not be empty")
	}

	if c.Bridge.MaxLength < 1 {
		return fmt.Errorf("bridge.max_length must be >= 1, got %d",
			c.Bridge.MaxLength)
	}

	if _, err := c.BridgeSettings(); err != nil {
		return err
	}

	port := c.Monitor.Port
	if port != 0 && (port < 1000 || port > 65535) {
		return fmt.Errorf("monitor.port must be 0 or within 1000-65535, got %d",
			port)
	}

	switch c.Recording.Backend {
	case BackendSQLite, BackendClickHouse:
	default:
		return fmt.Errorf("recording.backend must be %q or %q, got %q",
			BackendSQLite, BackendClickHouse, c.Recording.Backend)
	}

	if c.Recording.ClickHouse.BatchSize < 0 {
		return fmt.Errorf("recording.clickhouse.batch_size must be >= 0")
	}

	if c.Events.Enabled {
		if c.Events.RedisAddr == "" {
			return fmt.Errorf("events.redis_addr must not be empty")
		}

		if c.Events.Namespace == "" {
			return fmt.Errorf("events.namespace must not be empty")
		}
	}

	return nil
}

// ICSettings returns the settings of the IC mechanic.
func (c *Config) ICSettings() ic.Config {
	return ic.Config{
		BreakOnError:     c.IC.BreakOnError,
		KeepLoaded:       c.IC.KeepLoaded,
		ShortHandEnabled: c.IC.ShortHandEnabled,
		DebounceTicks:    timing.VTimeInTick(c.IC.DebounceTicks),
		CoalesceTriggers: c.IC.CoalesceTriggers,
		PermissionRoot:   c.IC.PermissionRoot,
	}
}

// BridgeSettings returns the settings of the bridge mechanic.
func (c *Config) BridgeSettings() (bridge.Settings, error) {
	s := bridge.Settings{MaxLength: c.Bridge.MaxLength}

	for _, name := range c.Bridge.AllowedBlocks {
		m, ok := world.ParseMaterial(name)
		if !ok || m == world.Air {
			return s, fmt.Errorf("bridge.allowed_blocks: unknown block %q", name)
		}

		s.AllowedBlocks = append(s.AllowedBlocks, m)
	}

	return s, nil
}

// Environment variables that override the configuration.
const (
	EnvBreakOnError   = "REDSTONE_IC_BREAK_ON_ERROR"
	EnvKeepLoaded     = "REDSTONE_IC_KEEP_LOADED"
	EnvShortHand      = "REDSTONE_IC_SHORTHAND"
	EnvDebounceTicks  = "REDSTONE_IC_DEBOUNCE_TICKS"
	EnvCoalesce       = "REDSTONE_IC_COALESCE"
	EnvMonitorPort    = "REDSTONE_MONITOR_PORT"
	EnvRecordPath     = "REDSTONE_RECORD_PATH"
	EnvRecordBackend  = "REDSTONE_RECORD_BACKEND"
	EnvClickHouseAddr = "REDSTONE_CLICKHOUSE_ADDR"
	EnvClickHousePwd  = "REDSTONE_CLICKHOUSE_PASSWORD"
	EnvRedisAddr      = "REDSTONE_REDIS_ADDR"
)

// ApplyEnv overrides the configuration with environment variables. The
// given dotenv files are read first. Variables already set in the process
// environment win over the files, and files that do not exist are skipped.
func (c *Config) ApplyEnv(envFiles ...string) error {
	env := make(map[string]string)

	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}

		values, err := godotenv.Read(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		for k, v := range values {
			env[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}

		v, ok := env[key]

		return v, ok
	}

	if err := c.applyLookup(lookup); err != nil {
		return err
	}

	return c.Validate()
}

func (c *Config) applyLookup(lookup func(string) (string, bool)) error {
	bools := []struct {
		key   string
		field *bool
	}{
		{EnvBreakOnError, &c.IC.BreakOnError},
		{EnvKeepLoaded, &c.IC.KeepLoaded},
		{EnvShortHand, &c.IC.ShortHandEnabled},
		{EnvCoalesce, &c.IC.CoalesceTriggers},
	}

	for _, b := range bools {
		v, ok := lookup(b.key)
		if !ok {
			continue
		}

		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}

		*b.field = parsed
	}

	if v, ok := lookup(EnvDebounceTicks); ok {
		ticks, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebounceTicks, err)
		}

		c.IC.DebounceTicks = ticks
	}

	if v, ok := lookup(EnvMonitorPort); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMonitorPort, err)
		}

		c.Monitor.Enabled = true
		c.Monitor.Port = port
	}

	if v, ok := lookup(EnvRecordPath); ok && v != "" {
		c.Recording.Enabled = true
		c.Recording.Path = v
	}

	if v, ok := lookup(EnvRecordBackend); ok && v != "" {
		c.Recording.Enabled = true
		c.Recording.Backend = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := lookup(EnvClickHouseAddr); ok && v != "" {
		c.Recording.ClickHouse.Addr = v
	}

	if v, ok := lookup(EnvClickHousePwd); ok {
		c.Recording.ClickHouse.Password = v
	}

	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Events.Enabled = true
		c.Events.RedisAddr = v
	}

	return nil
}
