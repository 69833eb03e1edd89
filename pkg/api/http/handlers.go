package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/tagserve/tagserve/internal/dotpath"
	"go.uber.org/zap"
)

// PredictRequest represents a prediction request
type PredictRequest struct {
	Texts []TextItem `json:"texts"`
}

// TextItem is one input text in a prediction request
type TextItem struct {
	Text string `json:"text"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respond wraps the handler's raw result in the response envelope. Every
// successful handler goes through here; faults bypass the envelope.
func (s *Server) respond(c *gin.Context, res result) {
	c.JSON(res.status, newEnvelope(c.Request, res))
}

// handleIndex handles health check requests
func (s *Server) handleIndex(c *gin.Context) {
	s.respond(c, result{
		message: http.StatusText(http.StatusOK),
		status:  http.StatusOK,
		data:    gin.H{},
	})
}

// handlePredict predicts tags for a list of texts using the loaded run
func (s *Server) handlePredict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Error("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	if req.Texts == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "texts field is required",
			},
		})
		return
	}

	bundle, err := s.store.Get()
	if err != nil {
		s.fail(c, err)
		return
	}

	texts := lo.Map(req.Texts, func(item TextItem, _ int) string {
		return item.Text
	})

	start := time.Now()
	predictions, err := s.predictor.Predict(c.Request.Context(), texts, bundle)
	if err != nil {
		s.logger.Error("prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "PREDICTION_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	if s.metrics != nil {
		s.metrics.RecordPredictions(len(predictions), time.Since(start))
	}

	s.respond(c, result{
		message: http.StatusText(http.StatusOK),
		status:  http.StatusOK,
		data:    gin.H{"predictions": predictions},
	})
}

// handleParams returns the parameter values used for the loaded run
func (s *Server) handleParams(c *gin.Context) {
	bundle, err := s.store.Get()
	if err != nil {
		s.fail(c, err)
		return
	}

	s.respond(c, result{
		message: http.StatusText(http.StatusOK),
		status:  http.StatusOK,
		data:    gin.H{"params": bundle.Params},
	})
}

// handleParam returns a specific parameter's value. An unknown name maps
// to the empty string rather than an error.
func (s *Server) handleParam(c *gin.Context) {
	bundle, err := s.store.Get()
	if err != nil {
		s.fail(c, err)
		return
	}

	name := c.Param("name")
	value, ok := bundle.Params[name]
	if !ok {
		value = ""
	}

	s.respond(c, result{
		message: http.StatusText(http.StatusOK),
		status:  http.StatusOK,
		data:    gin.H{"params": gin.H{name: value}},
	})
}

// handlePerformance returns the performance metrics for the loaded run,
// optionally narrowed by a dot-path filter. The filtered result is keyed
// by the literal filter string, not rebuilt into nested form.
func (s *Server) handlePerformance(c *gin.Context) {
	bundle, err := s.store.Get()
	if err != nil {
		s.fail(c, err)
		return
	}

	var data gin.H
	if filter := c.Query("filter"); filter != "" {
		data = gin.H{"performance": gin.H{
			filter: dotpath.Resolve(bundle.Performance, filter),
		}}
	} else {
		data = gin.H{"performance": bundle.Performance}
	}

	s.respond(c, result{
		message: http.StatusText(http.StatusOK),
		status:  http.StatusOK,
		data:    data,
	})
}

// fail surfaces an artifact store fault as a transport-level failure.
func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("artifact store access failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{
			Code:    "ARTIFACTS_UNAVAILABLE",
			Message: err.Error(),
		},
	})
}
