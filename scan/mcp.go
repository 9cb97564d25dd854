package scan

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/skylt/kit"
)

// RegisterMCP registers the analysis tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerAnalyzeHTMLTool(srv)
	s.registerAnalyzeURLTool(srv)
	s.registerListRunsTool(srv)
	s.registerGetRunTool(srv)
}

// toolLogging times each tool call and tags it with transport metadata.
func (s *Service) toolLogging(tool string) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, req any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			if err != nil {
				s.logger.Warn("scan: tool call failed",
					"tool", tool, "transport", kit.GetTransport(ctx),
					"duration", time.Since(start), "error", err)
				return nil, err
			}
			s.logger.Debug("scan: tool call",
				"tool", tool, "transport", kit.GetTransport(ctx),
				"duration", time.Since(start))
			return resp, nil
		}
	}
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	sch := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sch["required"] = required
	}
	return sch
}

// --- analyze html ---

type analyzeHTMLReq struct {
	HTML    string `json:"html"`
	PageURL string `json:"page_url,omitempty"`
}

func (s *Service) registerAnalyzeHTMLTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "skylt_analyze_html",
		Description: "Classify the UI text elements of an HTML document: element types, functional categories, Swedish keyword matches and a page summary.",
		InputSchema: inputSchema(map[string]any{
			"html":     map[string]any{"type": "string", "description": "HTML document to analyze"},
			"page_url": map[string]any{"type": "string", "description": "Optional page URL recorded with the run"},
		}, []string{"html"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*analyzeHTMLReq)
		return s.AnalyzeHTML(ctx, []byte(r.HTML), r.PageURL)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r analyzeHTMLReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, kit.Chain(s.toolLogging("skylt_analyze_html"))(endpoint), decode)
}

// --- analyze url ---

type analyzeURLReq struct {
	URL string `json:"url"`
}

func (s *Service) registerAnalyzeURLTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "skylt_analyze_url",
		Description: "Fetch a page (plain HTTP first, headless browser when needed) and classify its UI text elements.",
		InputSchema: inputSchema(map[string]any{
			"url": map[string]any{"type": "string", "description": "Page URL to analyze"},
		}, []string{"url"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*analyzeURLReq)
		return s.AnalyzeURL(ctx, r.URL)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r analyzeURLReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, kit.Chain(s.toolLogging("skylt_analyze_url"))(endpoint), decode)
}

// --- list runs ---

type listRunsReq struct {
	Limit int `json:"limit,omitempty"`
}

func (s *Service) registerListRunsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "skylt_list_runs",
		Description: "List recent analysis runs, newest first, without full results.",
		InputSchema: inputSchema(map[string]any{
			"limit": map[string]any{"type": "integer", "description": "Maximum number of runs to return"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*listRunsReq)
		runs, err := s.ListRuns(ctx, r.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"runs": runs}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r listRunsReq
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
				return nil, err
			}
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, kit.Chain(s.toolLogging("skylt_list_runs"))(endpoint), decode)
}

// --- get run ---

type getRunReq struct {
	RunID string `json:"run_id"`
}

func (s *Service) registerGetRunTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "skylt_get_run",
		Description: "Fetch a stored analysis run with its full element classification.",
		InputSchema: inputSchema(map[string]any{
			"run_id": map[string]any{"type": "string", "description": "Run identifier"},
		}, []string{"run_id"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*getRunReq)
		return s.GetRun(ctx, r.RunID)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r getRunReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, kit.Chain(s.toolLogging("skylt_get_run"))(endpoint), decode)
}
