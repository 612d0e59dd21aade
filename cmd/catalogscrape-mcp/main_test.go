package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callScrape(t *testing.T, endpoint string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = "scrape_catalog"
	req.Params.Arguments = args

	res, err := handleScrapeCatalog(endpoint, http.DefaultClient)(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestScrapeCatalog_Success(t *testing.T) {
	t.Parallel()

	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"type":"title","content":"Frutas"}]`))
	}))
	defer srv.Close()

	res := callScrape(t, srv.URL+"/api/scraper", map[string]any{"url": "https://shop.example/frutas?page=2"})

	assert.False(t, res.IsError)
	assert.Equal(t, "https://shop.example/frutas?page=2", gotURL)
	assert.Equal(t, "[\n  {\n    \"type\": \"title\",\n    \"content\": \"Frutas\"\n  }\n]", resultText(t, res))
}

func TestScrapeCatalog_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to scrape page: navigation timed out","code":"NAVIGATION_FAILED"}`))
	}))
	defer srv.Close()

	res := callScrape(t, srv.URL+"/api/scraper", map[string]any{"url": "https://shop.example/"})

	assert.True(t, res.IsError)
	assert.Equal(t, "[NAVIGATION_FAILED] Failed to scrape page: navigation timed out", resultText(t, res))
}

func TestScrapeCatalog_MissingURL(t *testing.T) {
	t.Parallel()

	res := callScrape(t, "http://127.0.0.1:0/api/scraper", map[string]any{})

	assert.True(t, res.IsError)
	assert.Equal(t, "url is required", resultText(t, res))
}
