package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(databasePathEnv, "")
	t.Setenv(telegramTokenEnv, "")
	t.Setenv(telegramChatIDEnv, "")

	cfg := Load()

	if cfg.Engine.DecayRate != 0.05 {
		t.Errorf("DecayRate = %v, want 0.05", cfg.Engine.DecayRate)
	}
	if cfg.Engine.ExcitationThreshold != 0.7 {
		t.Errorf("ExcitationThreshold = %v, want 0.7", cfg.Engine.ExcitationThreshold)
	}
	if cfg.Engine.CooldownDuration() != time.Hour {
		t.Errorf("CooldownDuration = %v, want 1h", cfg.Engine.CooldownDuration())
	}
	if cfg.Poll.Interval() != 5*time.Minute {
		t.Errorf("poll interval = %v, want 5m", cfg.Poll.Interval())
	}
	if len(cfg.Sites) != 2 {
		t.Fatalf("got %d default sites, want 2", len(cfg.Sites))
	}
}

func TestLoadFileOverridesAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte(`
engine:
  decayRate: 0.1
  excitationThreshold: 0.5
poll:
  intervalSeconds: 60
sites:
  - name: local
    scraper: gumtree
    url: http://localhost/feed
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(databasePathEnv, "/tmp/override.db")
	t.Setenv(telegramTokenEnv, "tok")
	t.Setenv(telegramChatIDEnv, "chat")

	cfg := Load()

	if cfg.Engine.DecayRate != 0.1 {
		t.Errorf("DecayRate = %v, want file value 0.1", cfg.Engine.DecayRate)
	}
	if cfg.Engine.ExcitationThreshold != 0.5 {
		t.Errorf("ExcitationThreshold = %v, want 0.5", cfg.Engine.ExcitationThreshold)
	}
	if cfg.Engine.CooldownSeconds != 3600 {
		t.Errorf("CooldownSeconds = %v, want default 3600 preserved", cfg.Engine.CooldownSeconds)
	}
	if cfg.Poll.IntervalSeconds != 60 {
		t.Errorf("IntervalSeconds = %v, want 60", cfg.Poll.IntervalSeconds)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Notifications.Telegram.BotToken != "tok" || cfg.Notifications.Telegram.ChatID != "chat" {
		t.Errorf("telegram env overrides not applied: %+v", cfg.Notifications.Telegram)
	}
	if len(cfg.Sites) != 1 || cfg.Sites[0].Name != "local" {
		t.Errorf("sites not replaced by file config: %+v", cfg.Sites)
	}
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(databasePathEnv, "")
	t.Setenv(telegramTokenEnv, "")
	t.Setenv(telegramChatIDEnv, "")

	cfg := Load()
	if cfg.Engine.DecayRate != 0.05 {
		t.Errorf("DecayRate = %v, want default on unreadable file", cfg.Engine.DecayRate)
	}
}
