package server

import (
	"net/http"

	"github.com/draiml/draiml/internal/ethics"
	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/logic"
	"github.com/draiml/draiml/internal/response"
)

// handleHealth godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Decisions: s.deps.Ledger.Len()})
}

// handleValidateResponse godoc
// @Summary Validate a generated medical response
// @Tags ethics
// @Accept json
// @Produce json
// @Param body body ValidateResponseRequest true "response to validate"
// @Success 200 {object} ValidateResponseResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/responses/validate [post]
func (s *Server) handleValidateResponse(w http.ResponseWriter, r *http.Request) {
	var body ValidateResponseRequest
	if !s.decode(w, r, &body) {
		return
	}
	res := s.deps.Ethics.ValidateResponse(r.Context(), body.Response, body.Context, body.Severity)

	out := ValidateResponseResponse{ValidationResult: res}
	if res.ModifiedResponse != res.OriginalResponse {
		out.Framing = response.Diff(res.OriginalResponse, res.ModifiedResponse)
	}
	s.logger.Info("validated response",
		logging.Field{Key: "evaluation_id", Value: res.EvaluationID},
		logging.Field{Key: "valid", Value: res.IsValid})
	writeJSON(w, http.StatusOK, out)
}

// handleEvaluate godoc
// @Summary Evaluate a proposed action against the principles
// @Tags ethics
// @Accept json
// @Produce json
// @Param body body EvaluateRequest true "action to evaluate"
// @Success 200 {object} model.EthicalEvaluation
// @Failure 400 {object} ErrorResponse
// @Router /v1/evaluations [post]
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var body EvaluateRequest
	if !s.decode(w, r, &body) {
		return
	}
	ev := s.deps.Ethics.Evaluate(r.Context(), body.Action, body.Context, body.Severity)
	writeJSON(w, http.StatusOK, ev)
}

// handleValidateConclusion godoc
// @Summary Validate a conclusion against premises
// @Tags logic
// @Accept json
// @Produce json
// @Param body body ConclusionRequest true "conclusion and premises"
// @Success 200 {object} logic.Verdict
// @Failure 400 {object} ErrorResponse
// @Router /v1/conclusions/validate [post]
func (s *Server) handleValidateConclusion(w http.ResponseWriter, r *http.Request) {
	var body ConclusionRequest
	if !s.decode(w, r, &body) {
		return
	}
	v := s.deps.Validator.ValidateConclusion(body.Conclusion, body.Premises)
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveVerdict(v.Valid)
	}
	writeJSON(w, http.StatusOK, v)
}

// handleAnalyze godoc
// @Summary Break a statement down into patterns, context and confidence
// @Tags logic
// @Accept json
// @Produce json
// @Param body body AnalyzeRequest true "statement"
// @Success 200 {object} logic.Analysis
// @Failure 400 {object} ErrorResponse
// @Router /v1/statements/analyze [post]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequest
	if !s.decode(w, r, &body) {
		return
	}
	a := s.deps.Analyzer.Analyze(body.Statement)
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveConfidence(a.Confidence)
	}
	writeJSON(w, http.StatusOK, a)
}

// handleEquivalence godoc
// @Summary Compare two statements
// @Tags logic
// @Accept json
// @Produce json
// @Param body body EquivalenceRequest true "statements"
// @Success 200 {object} EquivalenceResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/statements/equivalence [post]
func (s *Server) handleEquivalence(w http.ResponseWriter, r *http.Request) {
	var body EquivalenceRequest
	if !s.decode(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, EquivalenceResponse{
		Equivalent: s.deps.Validator.AreEquivalent(body.A, body.B),
		Overlap:    logic.Overlap(body.A, body.B),
	})
}

// handleConfidence godoc
// @Summary Score explicit validation data
// @Tags confidence
// @Accept json
// @Produce json
// @Param body body ConfidenceRequest true "validation data"
// @Success 200 {object} confidence.Result
// @Failure 400 {object} ErrorResponse
// @Router /v1/confidence [post]
func (s *Server) handleConfidence(w http.ResponseWriter, r *http.Request) {
	var body ConfidenceRequest
	if !s.decode(w, r, &body) {
		return
	}
	res := s.deps.Scorer.Score(body.data())
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveConfidence(res)
	}
	writeJSON(w, http.StatusOK, res)
}

// handlePrinciples godoc
// @Summary List the ethical principles
// @Tags ethics
// @Produce json
// @Success 200 {array} ethics.Principle
// @Router /v1/principles [get]
func (s *Server) handlePrinciples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ethics.Principles())
}

// handleListDecisions godoc
// @Summary List recorded decisions, oldest first
// @Tags ledger
// @Produce json
// @Param limit query int false "most recent N entries"
// @Success 200 {array} recorder.Entry
// @Failure 500 {object} ErrorResponse
// @Router /v1/decisions [get]
func (s *Server) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	entries, err := s.deps.Ledger.List(r.Context(), parseLimit(r, 0))
	if err != nil {
		s.logger.Warn("listing decisions", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Sessions

// handleCreateSession godoc
// @Summary Start a socratic session
// @Tags sessions
// @Produce json
// @Success 201 {object} SessionResponse
// @Router /v1/sessions [post]
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.deps.NewSession()
	if evicted := s.addSession(sess); evicted != "" {
		s.logger.Info("evicted idle session", logging.Field{Key: "session_id", Value: evicted})
	}

	s.logger.Info("created session", logging.Field{Key: "session_id", Value: sess.ID})
	writeJSON(w, http.StatusCreated, sessionResponse(sess))
}

// handleGetSession godoc
// @Summary Get a socratic session
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/sessions/{id} [get]
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// handleDeleteSession godoc
// @Summary End a socratic session
// @Tags sessions
// @Param id path string true "session id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /v1/sessions/{id} [delete]
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionParam(w, r)
	if !ok {
		return
	}
	s.removeSession(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// handleAddPremise godoc
// @Summary Add a premise to a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param body body PremiseRequest true "premise"
// @Success 200 {object} PremiseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/sessions/{id}/premises [post]
func (s *Server) handleAddPremise(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionParam(w, r)
	if !ok {
		return
	}
	var body PremiseRequest
	if !s.decode(w, r, &body) {
		return
	}
	accepted := sess.AddPremise(r.Context(), body.Premise)
	writeJSON(w, http.StatusOK, PremiseResponse{
		Accepted: accepted,
		Premises: sess.Premises(),
		Rejected: sess.Rejected(),
	})
}

// handleSessionConclusion godoc
// @Summary Draw a conclusion in a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param body body SessionConclusionRequest true "conclusion"
// @Success 200 {object} socratic.Conclusion
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/sessions/{id}/conclusion [post]
func (s *Server) handleSessionConclusion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionParam(w, r)
	if !ok {
		return
	}
	var body SessionConclusionRequest
	if !s.decode(w, r, &body) {
		return
	}
	c := sess.Conclude(r.Context(), body.Conclusion)
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveVerdict(c.Verdict.Valid)
	}
	writeJSON(w, http.StatusOK, c)
}
