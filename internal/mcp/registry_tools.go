// ABOUTME: MCP tool implementations for partner registry operations.
// ABOUTME: Registers registry_status, list_partners, import_partners, and set_partner_folder tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/partnerdesk/internal/models"
	"github.com/2389-research/partnerdesk/internal/registry"
)

const defaultListLimit = 50

func (s *Server) registerRegistryTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "registry_status",
		Description: "Report whether the partner registry is fresh, stale, or unavailable, with its last sync time.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleRegistryStatus)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_partners",
		Description: "List partners sorted by ID, with whether each has an existing archive folder.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"filter": {"type": "string", "enum": ["all", "missing", "search"], "description": "Which partners to list (default all)"},
				"search": {"type": "string", "description": "Case-insensitive substring of name or ID. Implies filter=search."},
				"limit": {"type": "number", "description": "Maximum number of partners to return (default 50)"}
			}
		}`),
	}, s.handleListPartners)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "import_partners",
		Description: "Reconcile the registry with a partner export (.xlsx or .csv). The first row is a header; columns are ID then name.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Path to the export file.", "minLength": 1}
			},
			"required": ["path"]
		}`),
	}, s.handleImportPartners)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "set_partner_folder",
		Description: "Assign an archive folder to a partner. An empty folder clears the assignment.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"partner_id": {"type": "string", "description": "ID of the partner.", "minLength": 1},
				"folder": {"type": "string", "description": "Folder name relative to the archive root."}
			},
			"required": ["partner_id"]
		}`),
	}, s.handleSetPartnerFolder)
}

func decodeArgs(req *gomcp.CallToolRequest, v interface{}) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func (s *Server) handleRegistryStatus(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	f := s.engine.Freshness(s.cfg)
	snap, _ := s.engine.Snapshot()

	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s (%s)\n", f.Label, f.State)
	fmt.Fprintf(&b, "Last sync: %s\n", f.LastSync)
	fmt.Fprintf(&b, "Sync interval: %s\n", s.cfg.SyncInterval)
	fmt.Fprintf(&b, "Partners: %d\n", snap.Len())
	if f.Err != nil {
		fmt.Fprintf(&b, "Detail: %v\n", f.Err)
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: b.String()}},
	}, nil
}

func (s *Server) handleListPartners(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Filter string `json:"filter"`
		Search string `json:"search"`
		Limit  int    `json:"limit"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	q := registry.Query{Filter: models.ParseFilterMode(args.Filter), Search: strings.TrimSpace(args.Search)}
	if q.Search != "" {
		q.Filter = models.FilterSearch
	}
	limit := args.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	view, err := s.engine.View(ctx, s.cfg, q, s.checker)
	if err != nil {
		return toolError("failed to build view: %v", err), nil
	}

	if len(view.Partners) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{
				Text: fmt.Sprintf("No partners found (total %d, missing folders %d).", view.Total, view.Missing),
			}},
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total: %d, missing folders: %d, shown: %d\n\n", view.Total, view.Missing, min(limit, len(view.Partners)))
	for i, p := range view.Partners {
		if i >= limit {
			fmt.Fprintf(&b, "... %d more\n", len(view.Partners)-limit)
			break
		}
		mark := "missing"
		if p.HasFolder {
			mark = "ok"
		}
		folder := p.Folder
		if folder == "" {
			folder = "-"
		}
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s\n", p.ID, p.Name, folder, mark, p.UpdatedAt)
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: b.String()}},
	}, nil
}

func (s *Server) handleImportPartners(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Path string `json:"path"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(args.Path) == "" {
		return toolError("path is required"), nil
	}

	res, err := s.engine.ImportFile(ctx, args.Path)
	if err != nil {
		return toolError("import failed, registry unchanged: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Imported %d rows at %s: %d new, %d renamed, %d unchanged, %d skipped (run %s)",
				res.Rows, res.SyncedAt, res.Inserted, res.Renamed, res.Unchanged, res.Skipped, res.RunID.String()[:8]),
		}},
	}, nil
}

func (s *Server) handleSetPartnerFolder(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PartnerID string `json:"partner_id"`
		Folder    string `json:"folder"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(args.PartnerID) == "" {
		return toolError("partner_id is required"), nil
	}

	applied, err := s.engine.SetFolder(ctx, args.PartnerID, args.Folder)
	if err != nil {
		return toolError("failed to save folder: %v", err), nil
	}
	if !applied {
		return toolError("partner %s not found or registry not loaded", args.PartnerID), nil
	}

	text := fmt.Sprintf("Folder for %s set to %q", args.PartnerID, strings.TrimSpace(args.Folder))
	if strings.TrimSpace(args.Folder) == "" {
		text = fmt.Sprintf("Folder for %s cleared", args.PartnerID)
	}
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}, nil
}

// toolError creates an error result for MCP tool calls.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
