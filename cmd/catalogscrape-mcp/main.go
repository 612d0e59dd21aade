package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// errorResponse mirrors the catalogscrape API error body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func main() {
	apiURL := os.Getenv("CATALOG_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	route := os.Getenv("CATALOG_ROUTE")
	if route == "" {
		route = "/api/scraper"
	}

	s := newServer(apiURL+route, &http.Client{Timeout: 120 * time.Second})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func newServer(endpoint string, client *http.Client) *server.MCPServer {
	s := server.NewMCPServer(
		"catalogscrape",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	scrapeCatalogTool := mcp.NewTool("scrape_catalog",
		mcp.WithDescription("Render a catalog page in a headless browser and return its section titles, descriptions and product cards as a JSON array of {type, content} blocks."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute URL of the catalog page"),
		),
	)
	s.AddTool(scrapeCatalogTool, handleScrapeCatalog(endpoint, client))

	return s
}

func handleScrapeCatalog(endpoint string, client *http.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		target, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?url="+url.QueryEscape(target), nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		if resp.StatusCode != http.StatusOK {
			errMsg := fmt.Sprintf("scrape failed with status %d", resp.StatusCode)
			var errResp errorResponse
			if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
				errMsg = errResp.Error
				if errResp.Code != "" {
					errMsg = fmt.Sprintf("[%s] %s", errResp.Code, errResp.Error)
				}
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		return mcp.NewToolResultText(pretty.String()), nil
	}
}
