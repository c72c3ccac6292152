// ABOUTME: Tests for MCP server creation and validation.
// ABOUTME: Verifies server requires an engine and a config.
package mcp

import (
	"path/filepath"
	"testing"

	"github.com/2389-research/partnerdesk/internal/config"
	"github.com/2389-research/partnerdesk/internal/registry"
	"github.com/2389-research/partnerdesk/internal/storage"
)

func newEngine(t *testing.T) *registry.Engine {
	t.Helper()
	reg, err := storage.NewFileRegistry(filepath.Join(t.TempDir(), "partners.yaml"))
	if err != nil {
		t.Fatalf("NewFileRegistry error: %v", err)
	}
	engine, err := registry.NewEngine(reg)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	return engine
}

func TestNewServerRequiresEngine(t *testing.T) {
	_, err := NewServer(nil, config.Default())
	if err == nil {
		t.Error("expected error when engine is nil")
	}
}

func TestNewServerRequiresConfig(t *testing.T) {
	_, err := NewServer(newEngine(t), nil)
	if err == nil {
		t.Error("expected error when config is nil")
	}
}

func TestNewServerSuccess(t *testing.T) {
	server, err := NewServer(newEngine(t), config.Default())
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil server")
	}
	if server.checker == nil {
		t.Error("expected default folder checker")
	}
}

func TestNewServerWithFolderChecker(t *testing.T) {
	called := false
	checker := func(root, folder string) bool {
		called = true
		return true
	}

	server, err := NewServer(newEngine(t), config.Default(), WithFolderChecker(checker))
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	server.checker("", "x")
	if !called {
		t.Error("expected custom folder checker to be set")
	}
}
