package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaleidalab/qdakit/pkg/config"
)

func TestCatalogPath(t *testing.T) {
	origCfg, origDir := cfg, catalogDir
	defer func() { cfg, catalogDir = origCfg, origDir }()

	cfg = config.DefaultConfig()

	catalogDir = ""
	assert.Equal(t, filepath.Join(cfg.DataDir, "catalog"), catalogPath())

	catalogDir = "/tmp/elsewhere"
	assert.Equal(t, "/tmp/elsewhere", catalogPath())
}
