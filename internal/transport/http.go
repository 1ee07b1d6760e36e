package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vikoShak/ATS/internal/auth"
)

// RPCHandler handles method dispatch.
type RPCHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// Authenticator opens, resolves and closes sessions.
type Authenticator interface {
	UserResolver
	Login(ctx context.Context, username, password string) (*auth.Session, error)
	Logout(ctx context.Context, token string) error
}

// CandidateExporter writes the candidate spreadsheet.
type CandidateExporter interface {
	ExportCandidates(ctx context.Context, w io.Writer) error
}

// Config wires the HTTP surface. Auth nil disables authentication; MCP nil
// leaves /mcp unmounted.
type Config struct {
	Handler  RPCHandler
	Auth     Authenticator
	Exporter CandidateExporter
	MCP      http.Handler
	Logger   *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	handler  RPCHandler
	auth     Authenticator
	exporter CandidateExporter
	logger   *slog.Logger
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	srv := &Server{
		handler:  cfg.Handler,
		auth:     cfg.Auth,
		exporter: cfg.Exporter,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	if cfg.Auth != nil {
		r.Post("/login", srv.handleLogin)
		r.Post("/logout", srv.handleLogout)
	}

	r.Group(func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(AuthMiddleware(cfg.Auth))
		}
		r.Post("/rpc", srv.handleRPC)
		if cfg.Exporter != nil {
			r.Get("/reports/candidates.xlsx", srv.handleCandidateExport)
		}
		if cfg.MCP != nil {
			r.Handle("/mcp", cfg.MCP)
			r.Handle("/mcp/*", cfg.MCP)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	batch, err := ParseBatch(r.Body)
	if err != nil {
		if errors.Is(err, errInvalidRequest) {
			WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
			return
		}
		WriteError(w, nil, ErrParseCode, "parse error", nil)
		return
	}

	if !batch.IsBatch {
		req := batch.Requests[0]
		resp, err := s.call(r.Context(), req)
		switch {
		case errors.Is(err, ErrUnauthorized):
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		case resp == nil:
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusOK, resp)
		}
		return
	}

	responses := make([]Response, 0, len(batch.Requests))
	for _, req := range batch.Requests {
		if resp, _ := s.call(r.Context(), req); resp != nil {
			responses = append(responses, *resp)
		}
	}
	WriteBatch(w, responses)
}

// call runs one request. It returns a nil response for notifications and
// the raw handler error alongside any error response.
func (s *Server) call(ctx context.Context, req Request) (*Response, error) {
	if req.invalid {
		resp := ErrorResponse(req.ID, ErrInvalidReq, "invalid request", nil)
		return &resp, nil
	}
	result, err := s.handler.Handle(ctx, req.Method, req.Params)
	if req.IsNotification() {
		if err != nil {
			s.logger.Debug("notification failed", "method", req.Method, "error", err)
		}
		return nil, err
	}
	if err != nil {
		resp := HandlerErrorResponse(req.ID, err)
		return &resp, err
	}
	resp := ResultResponse(req.ID, result)
	return &resp, nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid login payload", http.StatusBadRequest)
		return
	}
	sess, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		s.logger.Error("login failed", "error", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r.Header.Get("Authorization"))
	if err := s.auth.Logout(r.Context(), token); err != nil {
		s.logger.Error("logout failed", "error", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCandidateExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.exporter.ExportCandidates(r.Context(), &buf); err != nil {
		s.logger.Error("candidate export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
