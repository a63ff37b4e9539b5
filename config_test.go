package main

import (
	"testing"
	"time"
)

func testConfig() *Config {
	return &Config{
		bind:           "127.0.0.1",
		port:           8080,
		sessionTimeout: time.Minute,
		roundTime:      300 * time.Second,
		helpAfter:      time.Minute,
		helpAttempts:   2,
		frameInterval:  16 * time.Millisecond,
		volume:         0.28,
	}
}

func TestConfigValidate(t *testing.T) {
	if err := testConfig().validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(*Config){
		"lone cert":        func(c *Config) { c.tlsCert = "cert.pem" },
		"port zero":        func(c *Config) { c.port = 0 },
		"port too high":    func(c *Config) { c.port = 70000 },
		"fractional round": func(c *Config) { c.roundTime = 1500 * time.Millisecond },
		"help after round": func(c *Config) { c.helpAfter = 10 * time.Minute },
		"negative help":    func(c *Config) { c.helpAttempts = -1 },
		"zero frame":       func(c *Config) { c.frameInterval = 0 },
		"loud":             func(c *Config) { c.volume = 1.5 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			mutate(cfg)

			if err := cfg.validate(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestConfigRules(t *testing.T) {
	cfg := testConfig()
	cfg.roundTime = 90 * time.Second
	cfg.helpAfter = 30 * time.Second
	cfg.helpAttempts = 4

	r := cfg.rules()
	if r.RoundSeconds != 90 || r.HelpAfterSeconds != 30 || r.HelpAfterAttempts != 4 {
		t.Errorf("unexpected rules: %+v", r)
	}
	if r.BaseScore != 1000 || r.SecondBonus != 10 {
		t.Errorf("expected default scoring, got %+v", r)
	}
	if r.FrameInterval != 16*time.Millisecond {
		t.Errorf("unexpected frame interval: %s", r.FrameInterval)
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := testConfig()
	if cfg.scheme() != "http" {
		t.Errorf("expected http, got %s", cfg.scheme())
	}

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	if cfg.scheme() != "https" {
		t.Errorf("expected https, got %s", cfg.scheme())
	}
}

func TestFlagDefaults(t *testing.T) {
	cfg := &Config{}
	newCmd(cfg)

	if cfg.port != 8080 || cfg.roundTime != 300*time.Second || cfg.helpAfter != time.Minute {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvOverridesFlags(t *testing.T) {
	t.Setenv("CARTAS_PORT", "9090")
	t.Setenv("CARTAS_ROUND_TIME", "2m")
	t.Setenv("CARTAS_HELP_ATTEMPTS", "5")
	t.Setenv("CARTAS_MUTE", "true")

	cfg := &Config{}
	newCmd(cfg)

	if cfg.port != 9090 {
		t.Errorf("expected port from env, got %d", cfg.port)
	}
	if cfg.roundTime != 2*time.Minute {
		t.Errorf("expected round time from env, got %s", cfg.roundTime)
	}
	if cfg.helpAttempts != 5 {
		t.Errorf("expected help attempts from env, got %d", cfg.helpAttempts)
	}
	if !cfg.mute {
		t.Error("expected mute from env")
	}
}
