package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tagserve/tagserve/internal/artifacts"
	"github.com/tagserve/tagserve/pkg/ports"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for MVP
	},
}

// Handler handles WebSocket connections
type Handler struct {
	store     *artifacts.Store
	predictor ports.Predictor
	logger    *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(store *artifacts.Store, predictor ports.Predictor, logger *zap.Logger) *Handler {
	return &Handler{
		store:     store,
		predictor: predictor,
		logger:    logger,
	}
}

// predictFrame is one inbound request frame
type predictFrame struct {
	Texts []struct {
		Text string `json:"text"`
	} `json:"texts"`
}

// HandlePredictStream streams predictions back one per input text. The
// client sends a frame of texts and receives the predictions in input
// order as they complete.
func (h *Handler) HandlePredictStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	h.logger.Info("WebSocket connection established",
		zap.String("client", c.ClientIP()))

	ctx := c.Request.Context()

	for {
		var frame predictFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read failed", zap.Error(err))
			}
			return
		}

		bundle, err := h.store.Get()
		if err != nil {
			h.writeError(conn, err)
			return
		}

		for _, item := range frame.Texts {
			predictions, err := h.predictor.Predict(ctx, []string{item.Text}, bundle)
			if err != nil {
				h.logger.Error("prediction failed", zap.Error(err))
				h.writeError(conn, err)
				return
			}

			if err := conn.WriteJSON(predictions[0]); err != nil {
				h.logger.Error("failed to write message", zap.Error(err))
				return
			}
		}
	}
}

func (h *Handler) writeError(conn *websocket.Conn, err error) {
	_ = conn.WriteJSON(map[string]string{"error": err.Error()})
}
