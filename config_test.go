package occult

import (
	"os"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	// The test environment does not set OCCULT_CONFIG, so every knob must
	// fall back to its default.
	if os.Getenv("OCCULT_CONFIG") != "" {
		t.Skip("OCCULT_CONFIG is set, skipping default checks")
	}
	cfg := occultConfig()
	if cfg.order != 20 {
		t.Fatalf("default quadrature order: got %d, want 20", cfg.order)
	}
	if cfg.planeCacheSize != 128 {
		t.Fatalf("default plane cache size: got %d, want 128", cfg.planeCacheSize)
	}
	if cfg.workers != 0 {
		t.Fatalf("default worker count: got %d, want 0 (NumCPU)", cfg.workers)
	}
	if cfg.outputDir != "." {
		t.Fatalf("default output path: got %s, want .", cfg.outputDir)
	}
}

func TestConfigLoadedOnce(t *testing.T) {
	first := occultConfig()
	if !cfgLoaded {
		t.Fatal("the configuration must be marked loaded after the first read")
	}
	if second := occultConfig(); second != first {
		t.Fatal("repeated reads must return the same configuration")
	}
}
