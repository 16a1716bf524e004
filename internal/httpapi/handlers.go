package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reelsmith/internal/jobs"
)

type createJobRequest struct {
	Scenes []jobs.Scene      `json:"scenes"`
	Config jobs.RenderConfig `json:"config"`
}

type jobResponse struct {
	ID        string      `json:"id"`
	Status    jobs.Status `json:"status"`
	Scenes    int         `json:"scenes"`
	CreatedAt time.Time   `json:"created_at"`
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	applyConfigDefaults(&req.Config)
	if problems := validateCreateJob(req); len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": problems,
		})
		return
	}

	job := s.queue.Enqueue(req.Scenes, req.Config)
	writeJSON(w, http.StatusAccepted, jobResponse{
		ID:        job.ID,
		Status:    s.queue.Status(job.ID),
		Scenes:    len(job.Scenes),
		CreatedAt: job.CreatedAt,
	})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	queued := s.queue.List()
	ret := make([]jobResponse, 0, len(queued))
	for _, job := range queued {
		ret = append(ret, jobResponse{
			ID:        job.ID,
			Status:    jobs.StatusProcessing,
			Scenes:    len(job.Scenes),
			CreatedAt: job.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": ret})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing job id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"status": s.queue.Status(id),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]string, len(s.checks))
	healthy := true
	for name, check := range s.checks {
		if err := check.Health(r.Context()); err != nil {
			components[name] = err.Error()
			healthy = false
			continue
		}
		components[name] = "ok"
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	writeJSON(w, status, map[string]any{
		"status":     state,
		"components": components,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}
