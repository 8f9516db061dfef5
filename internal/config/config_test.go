package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Auth.Mode != AuthModeBasic {
		t.Fatalf("auth.mode = %q, want basic", cfg.Auth.Mode)
	}
	if cfg.Wake.Method != WakeSwitch || cfg.Wake.Switch != "gaming" {
		t.Fatalf("unexpected wake config: %+v", cfg.Wake)
	}
	if cfg.App.Name != DefaultAppName || cfg.App.Version != DefaultAppVersion {
		t.Fatalf("unexpected app identity: %+v", cfg.App)
	}
	if len(cfg.Devices.Climate) != 5 {
		t.Fatalf("expected the 5 default rooms, got %d", len(cfg.Devices.Climate))
	}
	for id, d := range cfg.Devices.Climate {
		if d.Protocol != "query" || d.Modes != "string" {
			t.Fatalf("room %s: unexpected adapter %+v", id, d)
		}
	}
	if _, ok := cfg.Devices.Switches["gaming"]; !ok {
		t.Fatalf("expected default gaming switch, got %+v", cfg.Devices.Switches)
	}
	if cfg.Emby.Port != 443 {
		t.Fatalf("emby.port = %d, want 443", cfg.Emby.Port)
	}
	if cfg.StatusCake.Limit != 20 {
		t.Fatalf("statuscake.limit = %d, want 20", cfg.StatusCake.Limit)
	}
	if cfg.Timeouts.Command != 5*time.Second || cfg.Timeouts.Status != 3*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg.Timeouts)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WOL_USERNAME", "admin")
	t.Setenv("WOL_PASSWORD", "s3cret")
	t.Setenv("SECRET_KEY", "signing-key")
	t.Setenv("PORT", "8080")
	t.Setenv("MAC", "AA:BB:CC:DD:EE:FF")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Auth.Username != "admin" || cfg.Auth.Password != "s3cret" || cfg.Auth.SecretKey != "signing-key" {
		t.Fatalf("credentials not taken from env: %+v", cfg.Auth)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.Wake.MAC != "AA:BB:CC:DD:EE:FF" {
		t.Fatalf("wake.mac = %q", cfg.Wake.MAC)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_FileReplacesDefaultRooms(t *testing.T) {
	path := writeConfig(t, `
port: "9000"
auth:
  mode: Session
devices:
  climate:
    quarto:
      host: 10.0.0.7
      protocol: PATH
      modes: INT
    garagem:
      host: 10.0.0.8
wake:
  method: led
  ip: 10.0.0.50
statuscake:
  limit: 0
timeouts:
  command: 2s
`)

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.Auth.Mode != AuthModeSession {
		t.Fatalf("unexpected top-level values: port=%q mode=%q", cfg.Port, cfg.Auth.Mode)
	}
	if len(cfg.Devices.Climate) != 2 {
		t.Fatalf("expected configured rooms to replace defaults, got %+v", cfg.Devices.Climate)
	}
	q := cfg.Devices.Climate["quarto"]
	if q.Host != "10.0.0.7" || q.Protocol != "path" || q.Modes != "int" {
		t.Fatalf("unexpected quarto adapter: %+v", q)
	}
	g := cfg.Devices.Climate["garagem"]
	if g.Protocol != "query" || g.Modes != "string" {
		t.Fatalf("expected protocol/modes defaults for garagem, got %+v", g)
	}
	if _, ok := cfg.Devices.Switches["gaming"]; !ok {
		t.Fatalf("switches absent from file should keep defaults, got %+v", cfg.Devices.Switches)
	}
	if cfg.Wake.Method != WakeLED || cfg.Wake.IP != "10.0.0.50" {
		t.Fatalf("unexpected wake config: %+v", cfg.Wake)
	}
	if cfg.StatusCake.Limit != 20 {
		t.Fatalf("non-positive limit should fall back to 20, got %d", cfg.StatusCake.Limit)
	}
	if cfg.Timeouts.Command != 2*time.Second || cfg.Timeouts.Status != 3*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg.Timeouts)
	}
}

func TestLoad_InvalidEnums(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantSub string
	}{
		{"auth_mode", "auth:\n  mode: oauth\n", "auth.mode"},
		{"wake_method", "wake:\n  method: pigeon\n", "wake.method"},
		{"protocol", "devices:\n  climate:\n    sala:\n      host: a.local\n      protocol: soap\n", "protocol"},
		{"modes", "devices:\n  climate:\n    sala:\n      host: a.local\n      modes: hex\n", "modes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(viper.New(), writeConfig(t, tc.body))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q should mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestLoad_ExplicitMissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yml")
	if _, err := Load(viper.New(), missing); err == nil {
		t.Fatalf("expected error for missing explicit config path")
	}
}
