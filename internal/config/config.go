package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Auth modes understood by the auth gate.
const (
	AuthModeBasic   = "basic"
	AuthModeSession = "session"
)

// Identity reported by /health when the config names none.
const (
	DefaultAppName    = "wol-app"
	DefaultAppVersion = "1.0.0"
)

// Wake methods for the primary wake action.
const (
	WakeSwitch = "switch"
	WakeLED    = "led"
	WakeWOL    = "wol"
)

// Config is the immutable process configuration, loaded once at startup.
type Config struct {
	Port       string           `mapstructure:"port"`
	LogLevel   string           `mapstructure:"log_level"`
	App        AppConfig        `mapstructure:"app"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Devices    DevicesConfig    `mapstructure:"devices"`
	Wake       WakeConfig       `mapstructure:"wake"`
	Emby       EmbyConfig       `mapstructure:"emby"`
	StatusCake StatusCakeConfig `mapstructure:"statuscake"`
	DB         DBConfig         `mapstructure:"db"`
	Timeouts   TimeoutConfig    `mapstructure:"timeouts"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// AuthConfig holds the single shared credential. An empty username or
// password disables every login rather than granting open access.
type AuthConfig struct {
	Mode         string `mapstructure:"mode"` // basic | session
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"` // bcrypt, replaces Password when set
	SecretKey    string `mapstructure:"secret_key"`
	SecureCookie bool   `mapstructure:"secure_cookie"`
}

type DevicesConfig struct {
	Climate  map[string]ClimateDevice `mapstructure:"climate"`
	Switches map[string]SwitchDevice  `mapstructure:"switches"`
}

// ClimateDevice describes one air-conditioner adapter.
type ClimateDevice struct {
	Host     string `mapstructure:"host"`
	Protocol string `mapstructure:"protocol"` // query | path
	Modes    string `mapstructure:"modes"`    // string | int
}

type SwitchDevice struct {
	Host string `mapstructure:"host"`
}

type WakeConfig struct {
	Method string `mapstructure:"method"` // switch | led | wol
	Switch string `mapstructure:"switch"`
	MAC    string `mapstructure:"mac"`
	IP     string `mapstructure:"ip"`
}

// EmbyConfig is the external media host whose reachability stands in for
// the gaming switch state.
type EmbyConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type StatusCakeConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	TestID  string `mapstructure:"test_id"`
	Limit   int    `mapstructure:"limit"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type TimeoutConfig struct {
	Command time.Duration `mapstructure:"command"`
	Status  time.Duration `mapstructure:"status"`
	Probe   time.Duration `mapstructure:"probe"`
	Uptime  time.Duration `mapstructure:"uptime"`
}

// legacy environment names kept from the original deployment
var envBindings = map[string]string{
	"port":               "PORT",
	"log_level":          "LOG_LEVEL",
	"auth.username":      "WOL_USERNAME",
	"auth.password":      "WOL_PASSWORD",
	"auth.secret_key":    "SECRET_KEY",
	"wake.mac":           "MAC",
	"wake.ip":            "IP",
	"statuscake.api_key": "STATUSCAKE_API_KEY",
	"statuscake.test_id": "STATUSCAKE_TEST_ID",
}

// Load reads config.yml (from path, or ./configs and . when path is empty),
// overlays environment variables and returns the validated configuration.
// A missing config file is not an error when no explicit path is given.
func Load(v *viper.Viper, path string) (Config, error) {
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "80")
	v.SetDefault("log_level", "info")
	v.SetDefault("app.name", DefaultAppName)
	v.SetDefault("app.version", DefaultAppVersion)
	v.SetDefault("auth.mode", AuthModeBasic)
	v.SetDefault("wake.method", WakeSwitch)
	v.SetDefault("wake.switch", "gaming")
	v.SetDefault("emby.host", "emby.snackk-media.com")
	v.SetDefault("emby.port", 443)
	v.SetDefault("statuscake.base_url", "https://api.statuscake.com")
	v.SetDefault("statuscake.limit", 20)
	v.SetDefault("db.path", "file::memory:?cache=shared")
	v.SetDefault("timeouts.command", 5*time.Second)
	v.SetDefault("timeouts.status", 3*time.Second)
	v.SetDefault("timeouts.probe", 5*time.Second)
	v.SetDefault("timeouts.uptime", 10*time.Second)
}

func bindEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	return nil
}

// Default registries, used when the configuration names no devices at all.
var (
	defaultClimate = map[string]ClimateDevice{
		"sala":       {Host: "living-room-ac.local", Protocol: "query", Modes: "string"},
		"suite":      {Host: "suite-ac.local", Protocol: "query", Modes: "string"},
		"escritorio": {Host: "office-ac.local", Protocol: "query", Modes: "string"},
		"cozinha":    {Host: "kitchen-ac.local", Protocol: "query", Modes: "string"},
		"visitas":    {Host: "visit-room-ac.local", Protocol: "query", Modes: "string"},
	}
	defaultSwitches = map[string]SwitchDevice{
		"gaming": {Host: "gaming-switch.local"},
	}
)

func (c *Config) normalize() {
	if c.Devices.Climate == nil {
		c.Devices.Climate = make(map[string]ClimateDevice, len(defaultClimate))
		for id, d := range defaultClimate {
			c.Devices.Climate[id] = d
		}
	}
	if c.Devices.Switches == nil {
		c.Devices.Switches = make(map[string]SwitchDevice, len(defaultSwitches))
		for id, d := range defaultSwitches {
			c.Devices.Switches[id] = d
		}
	}
	c.Auth.Mode = strings.ToLower(strings.TrimSpace(c.Auth.Mode))
	c.Wake.Method = strings.ToLower(strings.TrimSpace(c.Wake.Method))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	for id, d := range c.Devices.Climate {
		d.Protocol = strings.ToLower(strings.TrimSpace(d.Protocol))
		if d.Protocol == "" {
			d.Protocol = "query"
		}
		d.Modes = strings.ToLower(strings.TrimSpace(d.Modes))
		if d.Modes == "" {
			d.Modes = "string"
		}
		c.Devices.Climate[id] = d
	}
	if c.StatusCake.Limit <= 0 {
		c.StatusCake.Limit = 20
	}
}

// Validate rejects unknown enumerations. Empty registries and empty
// credentials are allowed: the service still starts and answers /health.
func (c Config) Validate() error {
	switch c.Auth.Mode {
	case AuthModeBasic, AuthModeSession:
	default:
		return fmt.Errorf("invalid auth.mode %q: must be basic or session", c.Auth.Mode)
	}
	switch c.Wake.Method {
	case WakeSwitch, WakeLED, WakeWOL:
	default:
		return fmt.Errorf("invalid wake.method %q: must be switch, led or wol", c.Wake.Method)
	}
	for id, d := range c.Devices.Climate {
		if d.Protocol != "query" && d.Protocol != "path" {
			return fmt.Errorf("devices.climate.%s: invalid protocol %q", id, d.Protocol)
		}
		if d.Modes != "string" && d.Modes != "int" {
			return fmt.Errorf("devices.climate.%s: invalid modes %q", id, d.Modes)
		}
	}
	return nil
}
