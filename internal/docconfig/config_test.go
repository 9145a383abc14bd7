package docconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOC_CONFIG", "")
	t.Setenv("DOC_TITLE", "")
	t.Setenv("CURRENCY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Title != "Nebenkostenabrechnung" {
		t.Fatalf("unexpected default title: %q", cfg.Title)
	}
	if cfg.Currency != "EUR" {
		t.Fatalf("unexpected default currency: %q", cfg.Currency)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	content := "title: Betriebskostenabrechnung\nlandlord_name: Hausverwaltung Nord\ncurrency: EUR\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DOC_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Title != "Betriebskostenabrechnung" {
		t.Fatalf("title not overridden: %q", cfg.Title)
	}
	if cfg.LandlordName != "Hausverwaltung Nord" {
		t.Fatalf("landlord not overridden: %q", cfg.LandlordName)
	}
}
