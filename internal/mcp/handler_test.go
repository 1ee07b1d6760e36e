package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"github.com/vikoShak/ATS/internal/auth"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/rpc"
	"github.com/vikoShak/ATS/internal/transport"
)

type dispatcherStub struct {
	handleFn func(ctx context.Context, method string, params json.RawMessage) (any, error)
}

func (d dispatcherStub) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	return d.handleFn(ctx, method, params)
}

type resolverStub struct {
	users map[string]*auth.User
}

func (r resolverStub) Resolve(_ context.Context, token string) (*auth.User, error) {
	if u, ok := r.users[token]; ok {
		return u, nil
	}
	return nil, auth.ErrUnauthorized
}

func connect(t *testing.T, cfg Config) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	server := NewServer(cfg)
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func resultText(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_ToolCatalogMatchesMethods(t *testing.T) {
	cs := connect(t, Config{
		Handler:       dispatcherStub{handleFn: func(context.Context, string, json.RawMessage) (any, error) { return nil, nil }},
		TransportMode: "stdio",
	})

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, rpc.Methods(), names)
}

func TestServer_CallToolPassesArguments(t *testing.T) {
	var gotMethod string
	var gotParams map[string]any
	cs := connect(t, Config{
		Handler: dispatcherStub{handleFn: func(_ context.Context, method string, params json.RawMessage) (any, error) {
			gotMethod = method
			require.NoError(t, json.Unmarshal(params, &gotParams))
			return map[string]any{"id": "a1", "full_name": "Ada Lovelace"}, nil
		}},
		TransportMode: "stdio",
	})

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "get_applicant",
		Arguments: map[string]any{"id": "a1"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Equal(t, "get_applicant", gotMethod)
	require.Equal(t, "a1", gotParams["id"])
	require.JSONEq(t, `{"id":"a1","full_name":"Ada Lovelace"}`, resultText(t, res))
}

func TestServer_CallToolReportsErrors(t *testing.T) {
	cs := connect(t, Config{
		Handler: dispatcherStub{handleFn: func(context.Context, string, json.RawMessage) (any, error) {
			return nil, applicant.ErrApplicantNotFound
		}},
		TransportMode: "stdio",
	})

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "delete_applicant",
		Arguments: map[string]any{"id": "missing"},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	var body rpc.APIError
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &body))
	require.Equal(t, "APPLICANT_NOT_FOUND", body.Code)
	require.NotEmpty(t, body.RecoveryHint)
}

func TestServer_CallToolUnmappedError(t *testing.T) {
	cs := connect(t, Config{
		Handler: dispatcherStub{handleFn: func(context.Context, string, json.RawMessage) (any, error) {
			return nil, errors.New("disk full")
		}},
		TransportMode: "stdio",
	})

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "get_dashboard"})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.JSONEq(t, `{"message":"disk full"}`, resultText(t, res))
}

func TestServer_DocResources(t *testing.T) {
	cs := connect(t, Config{
		Handler:       dispatcherStub{handleFn: func(context.Context, string, json.RawMessage) (any, error) { return nil, nil }},
		TransportMode: "stdio",
	})

	for _, doc := range docResources {
		res, err := cs.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: doc.URI})
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		require.Equal(t, doc.Content, res.Contents[0].Text)
		require.Equal(t, "text/markdown", res.Contents[0].MIMEType)
	}
}

func TestAuthMiddleware(t *testing.T) {
	resolver := resolverStub{users: map[string]*auth.User{
		"good": {ID: "1", Username: "TRIQ_ADMIN", IsAuthenticated: true},
	}}
	var seen string
	next := func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		seen = username(ctx)
		return &sdkmcp.CallToolResult{}, nil
	}
	handler := authMiddleware(resolver)(next)
	ctx := context.Background()

	withHeader := func(value string) *sdkmcp.CallToolRequest {
		h := http.Header{}
		if value != "" {
			h.Set("Authorization", value)
		}
		return &sdkmcp.CallToolRequest{Extra: &sdkmcp.RequestExtra{Header: h}}
	}

	_, err := handler(ctx, "tools/call", &sdkmcp.CallToolRequest{})
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = handler(ctx, "tools/call", withHeader(""))
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = handler(ctx, "tools/call", withHeader("Bearer bad"))
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = handler(ctx, "tools/call", withHeader("Bearer good"))
	require.NoError(t, err)
	require.Equal(t, "TRIQ_ADMIN", seen)

	seen = ""
	_, err = handler(ctx, "ping", &sdkmcp.CallToolRequest{})
	require.NoError(t, err)
	require.Empty(t, seen)
}

func TestUsernameFromContext(t *testing.T) {
	require.Empty(t, username(context.Background()))
	ctx := transport.WithUser(context.Background(), &auth.User{Username: "TRIQ_ADMIN"})
	require.Equal(t, "TRIQ_ADMIN", username(ctx))
}

func TestToolCatalog_DescriptionsMatchBehaviour(t *testing.T) {
	tools := map[string]ToolDefinition{}
	for _, def := range buildToolCatalog() {
		tools[def.Name] = def
	}

	require.Contains(t, tools["get_applicants"].Description, "insertion order")
	require.Contains(t, tools["get_all_applicants"].Description, "insertion order")
	require.Contains(t, tools["get_aging_alerts"].Description, "any status")
	schema, err := json.Marshal(tools["get_applicants"].InputSchema)
	require.NoError(t, err)
	require.Contains(t, string(schema), "location")

	for name, def := range tools {
		if name == "get_activities" {
			continue
		}
		require.NotContains(t, def.Description, "newest first", name)
	}
}
