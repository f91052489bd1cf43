package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spektr-org/hrquery/engine"
)

// ============================================================================
// HANDLERS
// ============================================================================
// Status mapping:
//   bad body / blank query  → 400 {"error": "Query cannot be empty."}
//   storage fault           → 500 {"error": "<driver text>"}
//   anything else           → 200 engine.Shape(result)
// ============================================================================

const healthStatus = "Server is running"

type chatRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": healthStatus})
}

func (s *Server) handleChat(c *gin.Context) {
	start := time.Now()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("chat body rejected", zap.Error(err))
		s.observe(c, engine.IntentUnrecognized, outcomeBadRequest, start)
		c.JSON(http.StatusBadRequest, gin.H{"error": engine.MessageEmptyQuery})
		return
	}

	spec, err := s.translator.Translate(req.Query)
	if err != nil {
		status := http.StatusInternalServerError
		outcome := outcomeError
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			status = http.StatusBadRequest
			outcome = outcomeBadRequest
		}
		s.observe(c, engine.IntentUnrecognized, outcome, start)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	res, err := engine.Execute(c.Request.Context(), *spec, s.storage,
		engine.WithLogger(s.logger.With(zap.String("request_id", c.GetString(ctxRequestID)))))
	if err != nil {
		s.observe(c, spec.Intent, outcomeError, start)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.observe(c, spec.Intent, outcomeFor(res), start)
	c.JSON(http.StatusOK, engine.Shape(res))
}

// observe tags the request for the access log and records metrics.
func (s *Server) observe(c *gin.Context, intent engine.Intent, outcome string, start time.Time) {
	c.Set(ctxIntent, intent.String())
	c.Set(ctxOutcome, outcome)
	if s.metrics != nil {
		s.metrics.Observe(intent.String(), outcome, time.Since(start))
	}
}

func outcomeFor(res *engine.Result) string {
	switch {
	case res.Kind == engine.ResultEmpty && res.Message == engine.MessageUnrecognized:
		return outcomeUnrecognized
	case res.Kind == engine.ResultEmpty:
		return outcomeEmpty
	default:
		return outcomeOK
	}
}
