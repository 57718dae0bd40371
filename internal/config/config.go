package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nizram/ping-monitor/internal/domain"
)

const (
	DefaultCheckInterval = "30s"
	DefaultProbeTimeout  = "5s"
)

// Config is the monitor's file configuration: global check timing plus the
// target list. Durations are kept as strings so the file stays hand-editable;
// Interval and Timeout parse them.
type Config struct {
	CheckInterval string          `yaml:"check_interval" validate:"omitempty,duration"`
	ProbeTimeout  string          `yaml:"probe_timeout" validate:"omitempty,duration"`
	Targets       []domain.Target `yaml:"targets" validate:"dive"`
}

// Default returns the starting configuration: two public resolvers checked by
// ping and a disabled local web server.
func Default() *Config {
	return &Config{
		CheckInterval: DefaultCheckInterval,
		ProbeTimeout:  DefaultProbeTimeout,
		Targets: []domain.Target{
			{Name: "Google DNS", Host: "8.8.8.8", Protocol: domain.ProtocolPing, Enabled: true},
			{Name: "Cloudflare DNS", Host: "1.1.1.1", Protocol: domain.ProtocolPing, Enabled: true},
			{Name: "Local HTTP", Host: "127.0.0.1", Port: 80, Protocol: domain.ProtocolTCP, Enabled: false},
		},
	}
}

// Interval returns the parsed check interval, falling back to the default
// when unset or unparseable.
func (c *Config) Interval() time.Duration {
	if d, err := time.ParseDuration(c.CheckInterval); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultCheckInterval)
	return d
}

// Timeout returns the parsed per-probe timeout, falling back to the default
// when unset or unparseable.
func (c *Config) Timeout() time.Duration {
	if d, err := time.ParseDuration(c.ProbeTimeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultProbeTimeout)
	return d
}

// GetConfigPath returns the path of the config file: $CONFIG_FILE when set,
// otherwise ~/.config/ping-monitor/config.yml.
func GetConfigPath() (string, error) {
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "ping-monitor", "config.yml"), nil
}

// InitConfig writes the default config file. It refuses to overwrite an
// existing file unless force is set.
func InitConfig(force bool) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfigYAML()), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// LoadConfig reads, parses and validates the config file.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrCreate loads the config file, writing the default one first when
// none exists yet.
func LoadOrCreate() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := InitConfig(false); err != nil {
			return nil, err
		}
	}
	return LoadConfig()
}

// SaveConfig writes the config back to the file.
func SaveConfig(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// AddTarget appends a target. Names key the file, so they must be unique.
func (c *Config) AddTarget(t domain.Target) error {
	if t.Name == "" {
		return errors.New("target name is required")
	}
	for _, existing := range c.Targets {
		if existing.Name == t.Name {
			return fmt.Errorf("target %q already exists", t.Name)
		}
	}
	if err := t.Validate(); err != nil {
		return err
	}
	c.Targets = append(c.Targets, t)
	return nil
}

// RemoveTarget removes a target by name.
func (c *Config) RemoveTarget(name string) error {
	for i, t := range c.Targets {
		if t.Name == name {
			c.Targets = append(c.Targets[:i], c.Targets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("target %q not found", name)
}

// Validate checks field constraints and target name uniqueness.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("duration", validDuration); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return formatValidationErrors(ve)
		}
		return err
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		if seen[t.Name] {
			return fmt.Errorf("duplicate target name %q", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

func validDuration(fl validator.FieldLevel) bool {
	_, err := time.ParseDuration(fl.Field().String())
	return err == nil
}

func formatValidationErrors(ve validator.ValidationErrors) error {
	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, fe := range ve {
		fmt.Fprintf(&sb, "- field '%s' failed on '%s'\n", fe.Namespace(), fe.Tag())
	}
	return errors.New(sb.String())
}

func defaultConfigYAML() string {
	return fmt.Sprintf(`# ping-monitor configuration
# check_interval: pause between checks of each target
# probe_timeout: upper bound for a single probe
check_interval: %s
probe_timeout: %s

# Targets to monitor. Protocols: ping, tcp, udp.
# Port defaults per protocol when omitted (tcp 80, udp 53).
targets:
  - name: Google DNS
    host: 8.8.8.8
    protocol: ping
    enabled: true
  - name: Cloudflare DNS
    host: 1.1.1.1
    protocol: ping
    enabled: true
  - name: Local HTTP
    host: 127.0.0.1
    port: 80
    protocol: tcp
    enabled: false
`, DefaultCheckInterval, DefaultProbeTimeout)
}
