package playground

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/WIIN2602/Farm2Hand/internal/assistant"
	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/widget"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512 * 1024
)

// Frame types sent to the client.
const (
	FramePanel   = "panel"
	FrameMessage = "message"
	FrameReply   = "reply"
	FrameError   = "error"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the widget is embedded on third-party pages
	},
}

// Frame is one server-to-client message.
type Frame struct {
	Type       string         `json:"type"`
	Result     *widget.Result `json:"result,omitempty"`
	Panel      *widget.Panel  `json:"panel,omitempty"`
	PanelError string         `json:"panelError,omitempty"`
	Text       string         `json:"text,omitempty"`
	Error      string         `json:"error,omitempty"`
	Prompt     string         `json:"prompt,omitempty"`
}

// WSConnection maintains the WebSocket connection with the client
type WSConnection struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	mu      sync.Mutex
	session *widget.Session
	logger  *zap.Logger
}

// handleWebSocket handles WebSocket connections
func (s *PlaygroundServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	wsConn := &WSConnection{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 256),
		done: make(chan struct{}),
	}
	wsConn.logger = s.logger.With(zap.String("session", wsConn.id))
	wsConn.session, _ = s.factory.New(wsConn.id, wsConn.sendReply, assistant.Sender(wsConn))

	if s.counter != nil {
		s.counter.SessionOpened()
	}
	wsConn.sendPanel(context.Background(), nil)

	// Start the read and write pumps
	go wsConn.writePump()
	go func() {
		wsConn.readPump()
		if s.counter != nil {
			s.counter.SessionClosed()
		}
	}()
}

// Send echoes a forwarded intent to the client.
func (c *WSConnection) Send(text string) {
	c.enqueue(Frame{Type: FrameMessage, Text: text})
}

// readPump pumps messages from the WebSocket connection to the session
func (c *WSConnection) readPump() {
	defer func() {
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket error", zap.Error(err))
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the server to the WebSocket connection
func (c *WSConnection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// handleMessage applies one client action. Only readPump touches the session.
func (c *WSConnection) handleMessage(message []byte) {
	var action widget.Action
	if err := json.Unmarshal(message, &action); err != nil {
		c.sendError(widget.ErrInvalidAction)
		return
	}

	ctx := context.Background()
	result, err := widget.Dispatch(ctx, c.session, action)
	if err != nil {
		c.logger.Debug("action rejected", zap.String("action", action.Type), zap.Error(err))
		c.sendError(err)
		return
	}
	c.sendPanel(ctx, &result)
}

// sendPanel sends the current panel along with result. An applied action is
// always reported; a render failure travels in PanelError instead of Panel.
func (c *WSConnection) sendPanel(ctx context.Context, result *widget.Result) {
	frame := Frame{Type: FramePanel, Result: result}
	panel, err := c.session.Panel(ctx)
	if err != nil {
		c.logger.Warn("panel render failed", zap.Stringer("view", c.session.View().Kind()), zap.Error(err))
		frame.PanelError = err.Error()
	} else {
		frame.Panel = &panel
	}
	c.enqueue(frame)
}

// sendReply relays an assistant answer. It runs on a responder worker.
func (c *WSConnection) sendReply(e assistant.Entry) {
	c.enqueue(Frame{Type: FrameReply, Text: e.Text})
}

// sendError sends an error frame to the client
func (c *WSConnection) sendError(err error) {
	frame := Frame{Type: FrameError, Error: err.Error()}
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		frame.Prompt = verr.Prompt
	}
	c.enqueue(frame)
}

// enqueue queues frame for writePump. Frames produced after the connection
// closed are discarded.
func (c *WSConnection) enqueue(frame Frame) {
	select {
	case <-c.done:
		return
	default:
	}

	data, err := json.Marshal(frame)
	if err != nil {
		c.logger.Error("marshal frame", zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
	case c.send <- data:
	default:
		c.logger.Warn("websocket buffer full, dropping frame", zap.String("type", frame.Type))
	}
}
