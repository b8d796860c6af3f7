package testsupport

import (
	"testing"

	"crateprep/internal/config"
)

// NewConfig returns a validated default config whose log directory points at
// a per-test temp dir.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
