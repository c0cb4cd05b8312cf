// Package http exposes a machine over a small JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/loomcraft/vbed/internal/compiler"
	"github.com/loomcraft/vbed/pkg/machine"
	"github.com/loomcraft/vbed/pkg/runner"
)

// Server serves machine state and accepts operations.
type Server struct {
	machine *machine.Machine
	logger  *slog.Logger
	hooks   runner.Hooks
}

// NewHandler creates the HTTP handler for a machine. A nil logger
// discards logs; hooks observe accepted and rejected operations, e.g.
// for metrics.
func NewHandler(m *machine.Machine, logger *slog.Logger, hooks runner.Hooks) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{machine: m, logger: logger, hooks: hooks}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/state", s.getState)
	r.Get("/needles/{bed}/{position}", s.getNeedle)
	r.Get("/needles/{bed}/{position}/operations", s.getLegalOperations)
	r.Post("/operations", s.postOperation)

	return r
}

// getState handles GET /state.
func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.machine.Snapshot())
}

// getNeedle handles GET /needles/{bed}/{position}. The slider bed is
// addressed with bed values "fs" and "bs".
func (s *Server) getNeedle(w http.ResponseWriter, r *http.Request) {
	n, ok := s.needleParam(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, machine.NeedleState{
		Needle: n,
		Loops:  s.machine.LoopsAt(n),
	})
}

// getLegalOperations handles GET /needles/{bed}/{position}/operations.
func (s *Server) getLegalOperations(w http.ResponseWriter, r *http.Request) {
	n, ok := s.needleParam(w, r)
	if !ok {
		return
	}
	legal := s.machine.LegalOperations(n)
	if legal == nil {
		legal = []machine.OpKind{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"needle":     n.String(),
		"operations": legal,
	})
}

// postOperation handles POST /operations. The body is one operation
// descriptor; needles are knitout strings.
func (s *Server) postOperation(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	op, err := compiler.DecodeOperation(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.machine.Execute(op); err != nil {
		s.logger.Warn("operation rejected", "op", op.String(), "error", err)
		if s.hooks.OnReject != nil {
			s.hooks.OnReject(op, err)
		}
		s.writeError(w, rejectionStatus(err), err)
		return
	}

	s.logger.Debug("operation executed", "op", op.String())
	if s.hooks.OnOperation != nil {
		s.hooks.OnOperation(op)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"op":      op.String(),
		"racking": s.machine.Racking(),
	})
}

// rejectionStatus maps Execute errors to status codes: unknown kinds
// are malformed requests, everything else is a valid descriptor the
// machine state forbids.
func rejectionStatus(err error) int {
	if errors.Is(err, machine.ErrUnknownOperation) {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

func (s *Server) needleParam(w http.ResponseWriter, r *http.Request) (machine.Needle, bool) {
	bed := chi.URLParam(r, "bed")
	pos, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid needle position: %w", err))
		return machine.Needle{}, false
	}

	n, err := machine.ParseNeedle(fmt.Sprintf("%s%d", bed, pos))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return machine.Needle{}, false
	}
	if !s.machine.NeedleExists(n) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("needle %s does not exist", n))
		return machine.Needle{}, false
	}
	return n, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
