// ABOUTME: Tests for the watch command's render step.
// ABOUTME: Verifies output and that an interrupted render is not an error.
package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2389-research/partnerdesk/internal/config"
	"github.com/2389-research/partnerdesk/internal/importer"
	"github.com/2389-research/partnerdesk/internal/models"
	"github.com/2389-research/partnerdesk/internal/registry"
	"github.com/2389-research/partnerdesk/internal/storage"
)

func setupWatchGlobals(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	reg, err := storage.NewFileRegistry(filepath.Join(dir, "partners.yaml"))
	if err != nil {
		t.Fatalf("NewFileRegistry error: %v", err)
	}
	engine, err := registry.NewEngine(reg)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	ctx := context.Background()
	if _, err := engine.Import(ctx, []importer.Row{{ID: "ID", Name: "Name"}, {ID: "P1", Name: "Acme"}}); err != nil {
		t.Fatalf("Import error: %v", err)
	}
	if _, err := engine.SetFolder(ctx, "P1", "Acme"); err != nil {
		t.Fatalf("SetFolder error: %v", err)
	}

	cfg := config.Default()
	cfg.ArchivePath = dir

	prevEngine, prevConfig, prevRegistry := globalEngine, globalConfig, globalRegistry
	globalEngine, globalConfig, globalRegistry = engine, cfg, reg
	t.Cleanup(func() {
		globalEngine, globalConfig, globalRegistry = prevEngine, prevConfig, prevRegistry
	})
}

func TestRenderWatch(t *testing.T) {
	setupWatchGlobals(t)

	var buf bytes.Buffer
	if err := renderWatch(context.Background(), &buf, registry.Query{Filter: models.FilterAll}); err != nil {
		t.Fatalf("renderWatch error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "registry is up to date") {
		t.Errorf("expected status, got: %s", out)
	}
	if !strings.Contains(out, "P1") {
		t.Errorf("expected partner row, got: %s", out)
	}
}

func TestRenderWatchCancelled(t *testing.T) {
	setupWatchGlobals(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := renderWatch(ctx, &buf, registry.Query{}); err != nil {
		t.Errorf("expected nil on interrupt, got: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output after interrupt, got: %q", buf.String())
	}
}
