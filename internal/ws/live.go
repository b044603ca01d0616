package ws

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/themobileprof/rantrack-be/internal/api/middleware"
	"github.com/themobileprof/rantrack-be/internal/db"
	"github.com/themobileprof/rantrack-be/internal/journal"
)

const (
	framesPerMinute = 120
	maxTextLength   = 10000
	maxFrameBytes   = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // token auth, not cookies
	},
}

// LiveHandler streams extraction results while the user is still typing
// or dictating a rant
type LiveHandler struct {
	engine          *journal.Engine
	jwtSecret       string
	framesPerMinute int
}

// NewLiveHandler creates a new live extraction handler
func NewLiveHandler(engine *journal.Engine, jwtSecret string) *LiveHandler {
	return &LiveHandler{
		engine:          engine,
		jwtSecret:       jwtSecret,
		framesPerMinute: framesPerMinute,
	}
}

// IncomingFrame is the client's current draft. Final asks the server to
// save it as an entry.
type IncomingFrame struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// OutgoingMessage represents a message to the client
type OutgoingMessage struct {
	Type  string      `json:"type"` // "extraction", "saved", "done", "error"
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// HandleLive authenticates and upgrades the connection, then answers each
// frame until the client goes away
func (h *LiveHandler) HandleLive(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = middleware.BearerToken(c.GetHeader("Authorization"))
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	claims, err := middleware.ParseToken(h.jwtSecret, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)

	userID := claims.UserID
	limiter := middleware.NewMessageLimiter(h.framesPerMinute)
	log.Printf("Live session connected: user=%s", userID)

	for {
		var frame IncomingFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if !limiter.Allow() {
			if err := h.send(conn, OutgoingMessage{Type: "error", Error: "Too many messages. Please slow down."}); err != nil {
				break
			}
			continue
		}

		if err := h.handleFrame(c, conn, userID, frame); err != nil {
			log.Printf("WebSocket write error: %v", err)
			break
		}
	}

	log.Printf("Live session closed: user=%s", userID)
}

// handleFrame answers one frame. Only write failures are returned;
// processing failures are reported to the client as error frames.
func (h *LiveHandler) handleFrame(c *gin.Context, conn *websocket.Conn, userID string, frame IncomingFrame) error {
	ctx := c.Request.Context()

	if len(frame.Text) > maxTextLength {
		return h.send(conn, OutgoingMessage{Type: "error", Error: "Text is too long"})
	}

	if !frame.Final {
		analysis := h.engine.Analyze(ctx, userID, frame.Text)
		return h.send(conn, OutgoingMessage{Type: "extraction", Data: analysis})
	}

	entry, analysis, err := h.engine.Record(ctx, userID, frame.Text, db.SourceLive)
	if err != nil {
		msg := "Failed to save entry"
		if errors.Is(err, journal.ErrEmptyText) {
			msg = err.Error()
		} else {
			log.Printf("[ERROR] live entry for user %s: %v", userID, err)
		}
		return h.send(conn, OutgoingMessage{Type: "error", Error: msg})
	}

	if err := h.send(conn, OutgoingMessage{Type: "extraction", Data: analysis}); err != nil {
		return err
	}
	if err := h.send(conn, OutgoingMessage{Type: "saved", Data: gin.H{"id": entry.ID}}); err != nil {
		return err
	}
	return h.send(conn, OutgoingMessage{Type: "done"})
}

func (h *LiveHandler) send(conn *websocket.Conn, msg OutgoingMessage) error {
	return conn.WriteJSON(msg)
}
