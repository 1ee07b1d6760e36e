package testserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"github.com/vikoShak/ATS/internal/auth"
	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/domain/department"
	"github.com/vikoShak/ATS/internal/domain/report"
	"github.com/vikoShak/ATS/internal/domain/requirement"
	"github.com/vikoShak/ATS/internal/domain/timesheet"
	"github.com/vikoShak/ATS/internal/mcp"
	"github.com/vikoShak/ATS/internal/rpc"
	"github.com/vikoShak/ATS/internal/sqlite"
	"github.com/vikoShak/ATS/internal/storage"
	"github.com/vikoShak/ATS/internal/transport"
)

const (
	Username = "TRIQ_ADMIN"
	Password = "test-password"
)

// Options tunes the stack behind a TestServer.
type Options struct {
	RequirementsDisabled bool
	ReplaceByEmail       bool
}

// TestServer runs the full HTTP surface over an in-memory SQLite database.
type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Handler *rpc.Handler
	Token   string
}

// RPCResponse is a decoded JSON-RPC response.
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      any             `json:"id,omitempty"`
}

// RPCError is a decoded JSON-RPC error object.
type RPCError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    rpc.APIError `json:"data"`
}

func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	applicantRepo := sqlite.NewApplicantRepository(db)
	requirementRepo := sqlite.NewRequirementRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	departments := department.NewCatalog()
	activitySvc := activity.NewService(activityRepo, nil)
	applicantSvc := applicant.NewService(applicantRepo, storage.NewPlaceholder(""), activitySvc, applicant.Options{
		ReplaceByEmail: opts.ReplaceByEmail,
		PhoneRegion:    "US",
	}, nil)
	requirementSvc := requirement.NewService(requirementRepo, departments, activitySvc, !opts.RequirementsDisabled, nil)
	timesheetSvc := timesheet.NewService(applicantRepo, activitySvc, nil)
	reportSvc := report.NewService(applicantSvc, requirementSvc, timesheetSvc, activitySvc, nil)

	handler := rpc.NewHandler(rpc.Services{
		Applicants:   applicantSvc,
		Requirements: requirementSvc,
		Timesheets:   timesheetSvc,
		Activity:     activitySvc,
		Departments:  departments,
		Reports:      reportSvc,
	}, nil)

	authSvc := auth.NewService(auth.Credential{Username: Username, Password: Password}, auth.NewMemoryStore(), time.Hour, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Handler:       handler,
		Resolver:      authSvc,
		AuthEnabled:   true,
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Handler:  handler,
		Auth:     authSvc,
		Exporter: reportSvc,
		MCP:      mcpHandler,
	}))

	ts := &TestServer{Server: server, DB: db, Handler: handler}
	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	ts.Token = ts.Login(t)
	return ts
}

// Login opens a session with the configured credential.
func (ts *TestServer) Login(t *testing.T) string {
	t.Helper()
	body, err := json.Marshal(transport.LoginRequest{Username: Username, Password: Password})
	require.NoError(t, err)

	resp, err := http.Post(ts.Server.URL+"/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sess auth.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sess))
	require.NotEmpty(t, sess.Token)
	return sess.Token
}

// RPC posts one JSON-RPC call to /rpc with the session token.
func (ts *TestServer) RPC(t *testing.T, method string, params any) RPCResponse {
	t.Helper()
	payload := map[string]any{"jsonrpc": "2.0", "method": method, "id": 1}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/rpc", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ts.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out RPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Decode calls method and unmarshals a successful result into out.
func (ts *TestServer) Decode(t *testing.T, method string, params, out any) {
	t.Helper()
	resp := ts.RPC(t, method, params)
	require.Nil(t, resp.Error, "%s failed: %+v", method, resp.Error)
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Result, out))
	}
}

// MCPClient connects an MCP client over the streamable HTTP endpoint.
func (ts *TestServer) MCPClient(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	httpClient := &http.Client{Transport: bearerTransport{token: ts.Token, base: http.DefaultTransport}}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(t.Context(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: httpClient,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(r)
}
