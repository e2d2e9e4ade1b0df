package ws

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/bridge/internal/domain/service"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/shared/utils"
)

const (
	maxFrameSize = 16 << 20
	writeWait    = 10 * time.Second
)

// Handler manages WebSocket connections
type Handler struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler
func NewHandler(registry *service.Registry, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry: registry,
		metrics:  metrics,
		logger:   logger.Named("ipc"),
		upgrader: websocket.Upgrader{
			// Origins are enforced by the CORS middleware in front of this route
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// connection is one upgraded socket
type connection struct {
	id       string
	clientIP string
	ws       *websocket.Conn
	writeMu  sync.Mutex
	inflight sync.WaitGroup
}

func (c *connection) send(reply types.InvokeReply) error {
	data, err := sonic.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// HandleConnection upgrades the request and serves frames until the client
// disconnects. In-flight invocations are allowed to finish first.
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	conn := &connection{
		id:       uuid.NewString(),
		clientIP: c.ClientIP(),
		ws:       ws,
	}
	defer conn.inflight.Wait()

	ws.SetReadLimit(maxFrameSize)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	logger := h.logger.With(zap.String("connection_id", conn.id))
	logger.Info("IPC connection opened", zap.String("client_ip", conn.clientIP))
	defer logger.Info("IPC connection closed")

	// Calls outlive the socket; nothing a client does aborts one
	ctx := context.WithoutCancel(c.Request.Context())

	h.reply(conn, types.InvokeReply{
		Type: types.ReplySystem,
		Data: map[string]interface{}{
			"connection_id": conn.id,
			"message":       "Connected to HTTP bridge",
		},
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg types.InvokeMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.recordIn("invalid")
			h.reply(conn, types.InvokeReply{ID: frameID(data), Type: types.ReplyError, Error: fmt.Sprintf("invalid frame: %v", err)})
			continue
		}

		switch msg.Type {
		case "ping":
			h.recordIn("ping")
			h.reply(conn, types.InvokeReply{ID: msg.ID, Type: types.ReplyPong})
		case "", "invoke":
			h.recordIn("invoke")
			if msg.Command == "" {
				h.reply(conn, types.InvokeReply{ID: msg.ID, Type: types.ReplyError, Error: "missing cmd"})
				continue
			}
			if err := utils.ValidateCommand(msg.Command); err != nil {
				h.reply(conn, types.InvokeReply{ID: msg.ID, Type: types.ReplyError, Error: fmt.Sprintf("invalid cmd: %v", err)})
				continue
			}
			conn.inflight.Add(1)
			go func(msg types.InvokeMessage) {
				defer conn.inflight.Done()
				h.dispatch(ctx, conn, msg)
			}(msg)
		default:
			h.recordIn("unknown")
			h.reply(conn, types.InvokeReply{ID: msg.ID, Type: types.ReplyError, Error: fmt.Sprintf("unknown message type: %s", msg.Type)})
		}
	}
}

// frameID recovers the call id from a frame whose other fields failed to decode
func frameID(data []byte) string {
	var head struct {
		ID string `json:"id"`
	}
	if err := sonic.Unmarshal(data, &head); err != nil {
		return ""
	}
	return head.ID
}

func (h *Handler) dispatch(ctx context.Context, conn *connection, msg types.InvokeMessage) {
	params := msg.Payload
	if params == nil {
		params = make(map[string]interface{})
	}

	requestID := msg.ID
	if requestID == "" {
		requestID = id.NewRequestID().String()
	}
	appCtx := &types.Context{
		Channel:   "ipc",
		RequestID: requestID,
		ClientIP:  conn.clientIP,
	}

	result, err := h.registry.Execute(ctx, msg.Command, params, appCtx)
	switch {
	case result == nil:
		message := "command returned no result"
		if err != nil {
			message = err.Error()
		}
		h.reply(conn, types.InvokeReply{ID: msg.ID, Type: types.ReplyError, Error: message})
	case result.Success:
		h.reply(conn, types.InvokeReply{ID: msg.ID, Type: types.ReplyResult, Data: result.Data})
	default:
		message := "command failed"
		if result.Error != nil {
			message = *result.Error
		}
		h.reply(conn, types.InvokeReply{ID: msg.ID, Type: types.ReplyError, Error: message})
	}
}

func (h *Handler) reply(conn *connection, reply types.InvokeReply) {
	if err := conn.send(reply); err != nil {
		h.logger.Debug("WebSocket write failed",
			zap.String("connection_id", conn.id),
			zap.String("id", reply.ID),
			zap.Error(err),
		)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", reply.Type)
	}
}

func (h *Handler) recordIn(msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage("in", msgType)
	}
}
