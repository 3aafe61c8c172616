package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.TickRate != 60 {
		t.Errorf("TickRate = %d, want 60", cfg.Server.TickRate)
	}
	if cfg.Simulation.Bolt.Cooldown != time.Second {
		t.Errorf("Bolt.Cooldown = %v, want 1s", cfg.Simulation.Bolt.Cooldown)
	}
	if cfg.Simulation.Bolt.Damage != 50 {
		t.Errorf("Bolt.Damage = %v, want 50", cfg.Simulation.Bolt.Damage)
	}
	if cfg.Simulation.Pulse.FreezeDuration != time.Second {
		t.Errorf("Pulse.FreezeDuration = %v, want 1s", cfg.Simulation.Pulse.FreezeDuration)
	}
	if len(cfg.Simulation.Skeleton.SpawnPoints) != 2 {
		t.Fatalf("SpawnPoints length = %d, want 2", len(cfg.Simulation.Skeleton.SpawnPoints))
	}
	if p := cfg.Simulation.Skeleton.SpawnPoints[1]; p.X != -5 || p.Y != 1 || p.Z != -5 {
		t.Errorf("SpawnPoints[1] = %+v, want {-5 1 -5}", p)
	}
	if cfg.Simulation.KeyBindings["q"] != "bolt" {
		t.Errorf("KeyBindings[q] = %q, want bolt", cfg.Simulation.KeyBindings["q"])
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  tick_rate: 30
  snapshot_codec: msgpack
simulation:
  bolt:
    cooldown: 250ms
    damage: 75
  skeleton:
    respawn_time: 2s
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.TickRate != 30 {
		t.Errorf("TickRate = %d, want 30", cfg.Server.TickRate)
	}
	if cfg.Server.SnapshotCodec != "msgpack" {
		t.Errorf("SnapshotCodec = %q, want msgpack", cfg.Server.SnapshotCodec)
	}
	if cfg.Simulation.Bolt.Cooldown != 250*time.Millisecond {
		t.Errorf("Bolt.Cooldown = %v, want 250ms", cfg.Simulation.Bolt.Cooldown)
	}
	if cfg.Simulation.Bolt.Damage != 75 {
		t.Errorf("Bolt.Damage = %v, want 75", cfg.Simulation.Bolt.Damage)
	}
	if cfg.Simulation.Skeleton.RespawnTime != 2*time.Second {
		t.Errorf("RespawnTime = %v, want 2s", cfg.Simulation.Skeleton.RespawnTime)
	}
	// 未覆盖的键保持默认值
	if cfg.Simulation.Pulse.Damage != 30 {
		t.Errorf("Pulse.Damage = %v, want 30", cfg.Simulation.Pulse.Damage)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero tick rate", func(c *Config) { c.Server.TickRate = 0 }},
		{"unknown codec", func(c *Config) { c.Server.SnapshotCodec = "xml" }},
		{"negative damage", func(c *Config) { c.Simulation.Bolt.Damage = -1 }},
		{"zero cooldown", func(c *Config) { c.Simulation.Pulse.Cooldown = 0 }},
		{"bad binding", func(c *Config) { c.Simulation.KeyBindings["r"] = "meteor" }},
		{"auth without secret", func(c *Config) {
			c.Auth.Required = true
			c.Auth.JWTSecret = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
