package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected app env: %s", cfg.AppEnv)
	}
	if cfg.StatsBombMaxRetries != 5 {
		t.Fatalf("unexpected max retries: %d", cfg.StatsBombMaxRetries)
	}
	if cfg.XTMaxIterations != 10 {
		t.Fatalf("unexpected xt iteration budget: %d", cfg.XTMaxIterations)
	}
	if cfg.PPDAZoneX != 48.0 {
		t.Fatalf("unexpected ppda zone boundary: %f", cfg.PPDAZoneX)
	}
	if cfg.SilverRejectThreshold != 0.05 {
		t.Fatalf("unexpected reject threshold: %f", cfg.SilverRejectThreshold)
	}
}

func TestLoadRejectsInvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_ENV")
	}
}

func TestLoadRejectsInvalidRejectThreshold(t *testing.T) {
	t.Setenv("SILVER_REJECT_THRESHOLD", "1.5")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range SILVER_REJECT_THRESHOLD")
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "competitions.yaml")
	content := `competitions:
  - competition_id: 43
    season_id: 106
    name: "FIFA World Cup 2022"
    enabled: true
  - competition_id: 2
    season_id: 27
    name: "Premier League 2015/2016"
    enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}

	if len(manifest.Competitions) != 2 {
		t.Fatalf("unexpected entry count: %d", len(manifest.Competitions))
	}
	enabled := manifest.Enabled()
	if len(enabled) != 1 {
		t.Fatalf("unexpected enabled count: %d", len(enabled))
	}
	if enabled[0].CompetitionID != 43 || enabled[0].SeasonID != 106 {
		t.Fatalf("unexpected enabled entry: %+v", enabled[0])
	}
}

func TestLoadManifestRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "competitions.yaml")
	content := `competitions:
  - competition_id: 43
    season_id: 106
    enabled: true
  - competition_id: 43
    season_id: 106
    enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected error for duplicate manifest entries")
	}
}

func TestLoadManifestRejectsMissingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "competitions.yaml")
	content := `competitions:
  - season_id: 106
    enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected error for missing competition_id")
	}
}
