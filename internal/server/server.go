// internal/server/server.go

// Package server exposes the planner over HTTP. It is a thin shell: request
// decoding, input-quality guards, and response encoding. All planning logic
// lives in the pipeline and estimator packages.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"planflow/internal/common/errors"
	"planflow/internal/common/logger"
	"planflow/internal/common/metrics"
	"planflow/internal/models"
	"planflow/internal/planner/pipeline"
	"planflow/internal/planner/sufficiency"
)

// minGenerateMessages is the cheap guard against generating from a transcript
// that cannot possibly describe a project yet.
const minGenerateMessages = 3

type Server struct {
	estimator *sufficiency.Estimator
	pipeline  *pipeline.Pipeline
	logger    logger.Logger
}

func New(estimator *sufficiency.Estimator, pl *pipeline.Pipeline, log logger.Logger) *Server {
	return &Server{
		estimator: estimator,
		pipeline:  pl,
		logger: log.With(map[string]interface{}{
			"component": "http-server",
		}),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /generate-plan", s.handleGeneratePlan)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	log := s.requestLogger(r)

	req, ok := s.decodeTranscript(w, r, log, "/chat")
	if !ok {
		return
	}

	result := s.estimator.Evaluate(r.Context(), models.Transcript(req.Messages))

	// Surface the scorer's own text; the canned conclusion covers forced
	// sufficiency, where there is no model reply to pass through.
	reply := result.AssistantReply
	if result.IsSufficient && strings.TrimSpace(reply) == "" {
		reply = sufficiency.ConcludingReply
	}

	s.writeJSON(w, http.StatusOK, ChatResponse{
		AssistantReply: reply,
		Progress:       result.Score,
		IsSufficient:   result.IsSufficient,
	}, "/chat")
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	log := s.requestLogger(r)

	req, ok := s.decodeTranscript(w, r, log, "/generate-plan")
	if !ok {
		return
	}

	if len(req.Messages) < minGenerateMessages {
		err := errors.NewInsufficientInputError(fmt.Sprintf("%d message(s), need %d", len(req.Messages), minGenerateMessages))
		log.WithError(err).Warn("rejected generation request", nil)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "Not enough information to generate a report. Please describe your project first.",
		}, "/generate-plan")
		return
	}

	plan, err := s.pipeline.Generate(r.Context(), models.Transcript(req.Messages))
	if err != nil {
		// Only broken wiring lands here; tier and validator failures are
		// absorbed by the pipeline.
		log.WithError(err).Error("plan generation failed", nil)
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "Plan generation is misconfigured. Please contact the operator.",
		}, "/generate-plan")
		return
	}

	s.writeJSON(w, http.StatusOK, plan, "/generate-plan")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "PlanFlow API",
	}, "/healthz")
}

func (s *Server) decodeTranscript(w http.ResponseWriter, r *http.Request, log logger.Logger, route string) (ChatRequest, bool) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"}, route)
		return req, false
	}
	if err := req.Validate(); err != nil {
		log.WithError(err).Warn("rejected malformed transcript", nil)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid transcript: " + err.Error()}, route)
		return req, false
	}
	return req, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}, route string) {
	metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("encode response failed", map[string]interface{}{
			"route": route,
		})
	}
}

func (s *Server) requestLogger(r *http.Request) logger.Logger {
	return s.logger.With(map[string]interface{}{
		"requestId": uuid.NewString(),
		"path":      r.URL.Path,
	})
}
