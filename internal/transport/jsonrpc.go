package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vikoShak/ATS/internal/rpc"
)

// JSON-RPC 2.0 error codes.
const (
	ErrParseCode      = -32700
	ErrInvalidReq     = -32600
	ErrMethodNotFound = -32601
	ErrInvalidParams  = -32602
	ErrInternal       = -32603
	// ErrApplication is used for domain failures; data carries the API error.
	ErrApplication = -32000
)

// Bodies carry base64 documents, so the cap is generous.
const maxRequestBytes = 32 << 20

// Request represents a JSON-RPC 2.0 request. A nil ID marks a notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`

	invalid bool
}

// IsNotification reports whether the caller expects no response.
func (r Request) IsNotification() bool {
	return r.ID == nil && !r.invalid
}

// Response represents a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id,omitempty"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// errInvalidRequest marks a well-formed JSON payload that is not a valid request.
var errInvalidRequest = errors.New("invalid request")

// Batch is a decoded request body. Single requests have IsBatch false and
// exactly one entry. Invalid batch entries are kept so they can be answered
// in place.
type Batch struct {
	Requests []Request
	IsBatch  bool
}

// ParseRequest parses and validates a single JSON-RPC request payload.
func ParseRequest(body io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("parse error: %w", err)
	}
	if !req.valid() {
		return Request{}, errInvalidRequest
	}
	return req, nil
}

// ParseBatch parses a single request or a JSON array of requests.
func ParseBatch(body io.Reader) (Batch, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxRequestBytes))
	if err != nil {
		return Batch{}, fmt.Errorf("parse error: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		req, err := ParseRequest(bytes.NewReader(data))
		if err != nil {
			return Batch{}, err
		}
		return Batch{Requests: []Request{req}}, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return Batch{}, fmt.Errorf("parse error: %w", err)
	}
	if len(raws) == 0 {
		return Batch{}, errInvalidRequest
	}
	batch := Batch{Requests: make([]Request, 0, len(raws)), IsBatch: true}
	for _, raw := range raws {
		var req Request
		if err := json.Unmarshal(raw, &req); err != nil || !req.valid() {
			req = Request{ID: req.ID, invalid: true}
		}
		batch.Requests = append(batch.Requests, req)
	}
	return batch, nil
}

func (r Request) valid() bool {
	return r.JSONRPC == "2.0" && r.Method != ""
}

// ResultResponse builds a success response.
func ResultResponse(id, result any) Response {
	return Response{JSONRPC: "2.0", Result: result, ID: id}
}

// ErrorResponse builds an error response.
func ErrorResponse(id any, code int, message string, data any) Response {
	return Response{
		JSONRPC: "2.0",
		Error:   &Error{Code: code, Message: message, Data: data},
		ID:      id,
	}
}

// HandlerErrorResponse converts a handler error to a JSON-RPC error response.
func HandlerErrorResponse(id any, err error) Response {
	apiErr := rpc.MapError(err)
	if apiErr == nil {
		return ErrorResponse(id, ErrInternal, rpc.Message(err), nil)
	}
	code := ErrApplication
	switch apiErr.Code {
	case "INVALID_INPUT":
		code = ErrInvalidParams
	case "UNKNOWN_METHOD":
		code = ErrMethodNotFound
	}
	return ErrorResponse(id, code, apiErr.Message, apiErr)
}

// WriteResult writes a JSON-RPC success response.
func WriteResult(w http.ResponseWriter, id any, result any) {
	writeJSON(w, http.StatusOK, ResultResponse(id, result))
}

// WriteError writes a JSON-RPC error response.
func WriteError(w http.ResponseWriter, id any, code int, message string, data any) {
	writeJSON(w, http.StatusOK, ErrorResponse(id, code, message, data))
}

// WriteHandlerError converts a handler error and writes it.
func WriteHandlerError(w http.ResponseWriter, id any, err error) {
	writeJSON(w, http.StatusOK, HandlerErrorResponse(id, err))
}

// WriteBatch writes batch responses. A batch of notifications gets no body.
func WriteBatch(w http.ResponseWriter, responses []Response) {
	if len(responses) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
