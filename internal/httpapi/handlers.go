package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nizram/ping-monitor/internal/config"
	"github.com/nizram/ping-monitor/internal/domain"
	"github.com/nizram/ping-monitor/internal/monitor"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (s *Server) handleListTargets(w http.ResponseWriter, r *http.Request) {
	list := s.Engine.List()
	if list == nil {
		list = []domain.Status{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetTarget(w http.ResponseWriter, r *http.Request) {
	id := domain.TargetID(chi.URLParam(r, "id"))
	st, ok := s.Engine.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "target not found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleAddTarget(w http.ResponseWriter, r *http.Request) {
	var t domain.Target
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	if t.Name == "" {
		writeError(w, http.StatusBadRequest, "target name is required")
		return
	}
	p, err := domain.ParseProtocol(string(t.Protocol))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t.Protocol = p
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg != nil {
		if err := s.cfg.AddTarget(t); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
	}
	id, err := s.Engine.Add(t)
	if err != nil {
		if s.cfg != nil {
			_ = s.cfg.RemoveTarget(t.Name)
		}
		if errors.Is(err, monitor.ErrClosed) {
			writeError(w, http.StatusServiceUnavailable, "shutting down")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveConfigLocked()

	st, _ := s.Engine.Get(id)
	s.Logger.Info("api_target_added",
		zap.String("target_id", string(id)),
		zap.String("name", t.Name),
	)
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleRemoveTarget(w http.ResponseWriter, r *http.Request) {
	id := domain.TargetID(chi.URLParam(r, "id"))
	st, ok := s.Engine.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "target not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Engine.Remove(id)
	if s.cfg != nil {
		if err := s.cfg.RemoveTarget(st.Target.Name); err == nil {
			s.saveConfigLocked()
		}
	}
	s.Logger.Info("api_target_removed", zap.String("target_id", string(id)))
	w.WriteHeader(http.StatusNoContent)
}

// saveConfigLocked writes the config file. The engine already holds the
// change, so a failed write only costs persistence, not monitoring.
func (s *Server) saveConfigLocked() {
	if s.cfg == nil {
		return
	}
	if err := config.SaveConfig(s.cfg); err != nil {
		s.Logger.Warn("config_save_failed", zap.Error(err))
	}
}
