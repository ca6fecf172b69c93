package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bttk/canvas-mcp/pkg/canvasmcp"
	"github.com/bttk/canvas-mcp/pkg/memory"
)

type recordedPut struct {
	path          string
	authorization string
	content       string
}

func TestStreamableServer_ForwardsHeadersAndSessionProject(t *testing.T) {
	var mu sync.Mutex
	var puts []recordedPut
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"projects": [{"name": "main", "path": "/notes", "is_default": true}, {"name": "work", "path": "/work"}], "default_project": "main"}`))
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			var content string
			_ = json.Unmarshal(body, &content)
			mu.Lock()
			puts = append(puts, recordedPut{r.URL.Path, r.Header.Get("Authorization"), content})
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer api.Close()

	memClient, err := memory.NewClient(api.URL, "static-token")
	require.NoError(t, err)

	s := server.NewMCPServer("Canvas MCP Server", "1.0.0", server.WithToolCapabilities(false))
	canvasmcp.RegisterCanvas(s, canvasmcp.NewClientCreator(memClient, ""))

	ts := httptest.NewServer(newStreamableServer(s, "work"))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := client.NewStreamableHttpClient(ts.URL+"/mcp",
		transport.WithHTTPHeaders(map[string]string{"Authorization": "Bearer caller-token"}))
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test-client", Version: "1.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)

	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = "canvas"
	callReq.Params.Arguments = map[string]any{
		"nodes":  []any{map[string]any{"id": "n1", "type": "text", "text": "Hello", "x": 0, "y": 0, "width": 200, "height": 50}},
		"edges":  []any{},
		"title":  "Map",
		"folder": "diagrams",
	}
	res, err := c.CallTool(ctx, callReq)
	require.NoError(t, err)
	require.False(t, res.IsError)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "# Created: diagrams/Map.canvas\n\nThe canvas is ready to open in Obsidian.", text.Text)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, puts, 1)
	assert.Equal(t, "/work/resource/diagrams/Map.canvas", puts[0].path)
	assert.Equal(t, "Bearer caller-token", puts[0].authorization)
	assert.Contains(t, puts[0].content, `"Hello"`)
}
