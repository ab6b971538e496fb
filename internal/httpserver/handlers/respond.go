package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/filterbar"
	"github.com/MrSnakeDoc/namax/internal/generator"
	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
	"github.com/MrSnakeDoc/namax/internal/httpserver/mw"
	"github.com/MrSnakeDoc/namax/internal/logger"
)

const maxBodyBytes = 64 << 10

var errBadBody = errors.New("invalid request body")

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: msg}})
}

// writeErr maps domain sentinels onto status codes.
func writeErr(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, errBadBody):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, filterbar.ErrUnknownFilter):
		writeError(w, http.StatusBadRequest, "unknown_filter", err.Error())
	case errors.Is(err, filterbar.ErrInvalidValue):
		writeError(w, http.StatusBadRequest, "invalid_value", err.Error())
	case errors.Is(err, generator.ErrMissingKeyword):
		writeError(w, http.StatusBadRequest, "missing_keyword", err.Error())
	case errors.Is(err, generator.ErrUnknownType):
		writeError(w, http.StatusNotFound, "unknown_type", err.Error())
	case errors.Is(err, collection.ErrWriteFailed):
		writeError(w, http.StatusServiceUnavailable, "write_failed", "changes could not be saved")
	case errors.Is(err, filterbar.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, "session_closed", "filter session is shutting down")
	default:
		log.Error("unhandled request error", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", http.StatusText(http.StatusInternalServerError))
	}
}

// decodeBody decodes a JSON object into v. Numbers stay json.Number so
// integer criteria survive untouched. An empty body leaves v as is when
// allowEmpty is set.
func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	if len(data) > maxBodyBytes {
		return fmt.Errorf("%w: body too large", errBadBody)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: empty body", errBadBody)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	return nil
}

// collectionFor returns the collection store of the calling client.
func collectionFor(d deps.Deps, r *http.Request) *collection.Store {
	return d.Collections.For(mw.ClientID(r.Context()))
}

// plainNumbers converts json.Number values into int or float64 so stored
// criteria read back the way they were sent.
func plainNumbers(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		return plainNumbers(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}
