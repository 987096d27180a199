package hub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"trivia-arena/internal/domain"
	"trivia-arena/internal/service"

	"github.com/sirupsen/logrus"
)

// 包级别的 WebSocket 常量，供 hub 和 client 包内使用
const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

// 客户端与服务端之间的事件名。载荷字段沿用既有客户端的西语命名，
// 不能改动，改了就是断开所有线上客户端的协议变更。
const (
	// client → server
	EventSearchMatch  = "buscarPartida"
	EventCancelSearch = "cancelarBusqueda"
	EventReportResult = "reportResults"

	// server → client
	EventMatchCreated   = "partidaCreada"
	EventMatchFound     = "partidaEncontrada"
	EventMatchReady     = "partidaLista"
	EventMatchFinished  = "partidaFinalizada"
	EventMatchCancelled = "partidaCancelada"
	EventError          = "error"
)

// Envelope 是 WebSocket 上所有消息的统一外层结构。
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// searchPayload 是 buscarPartida / cancelarBusqueda 事件的载荷。
// 身份以 JWT 为准；载荷里的 idJugador 与之不符时拒绝整个事件。
type searchPayload struct {
	PlayerID uint `json:"idJugador"`
}

// reportPayload 是 reportResults 事件的载荷。
type reportPayload struct {
	MatchID  uint `json:"partidaId"`
	PlayerID uint `json:"idJugador"`
	Correct  int  `json:"totalAciertos"`
}

var errIdentityMismatch = errors.New("payload player id does not match authenticated identity")

// checkIdentity 校验载荷声明的玩家 ID (0 表示载荷未携带)。
func checkIdentity(claimed, authenticated uint) error {
	if claimed != 0 && claimed != authenticated {
		return errIdentityMismatch
	}
	return nil
}

// HubMessage 定义了在 Hub 内部通道传递的消息类型
type HubMessage struct {
	Type    string  // "register", "unregister", "event"
	UserID  uint    // 来源用户 ID
	Client  *Client // 仅用于 register/unregister (和 event 关联的 client)
	RawData []byte  // 仅用于 event (原始 WebSocket 消息)
}

// Hub 是连接网关：维护 身份 → 连接 映射并把客户端事件分发给
// Session Manager。推送是尽力而为的：目标不在线就丢弃，不做重放。
type Hub struct {
	// 内部通道，处理所有来自 Client 的事件
	messageChan chan HubMessage

	// 身份 → 连接。不变量: 每个身份至多一条活跃连接，
	// 新连接注册时旧连接被驱逐。
	clients   map[uint]*Client
	clientsMu sync.RWMutex

	matchService *service.MatchService
}

// NewHub 创建并返回一个新的 Hub 实例
func NewHub(matchService *service.MatchService) *Hub {
	if matchService == nil {
		panic("MatchService cannot be nil for Hub")
	}
	return &Hub{
		messageChan:  make(chan HubMessage, 512),
		clients:      make(map[uint]*Client),
		matchService: matchService,
	}
}

// Run 启动 Hub 的主事件处理循环。
// 它应该在一个单独的 goroutine 中运行。
func (h *Hub) Run() {
	log := logrus.WithField("component", "hub")
	log.Info("Hub is running...")

	for msg := range h.messageChan {
		switch msg.Type {
		case "register":
			h.registerClient(msg.Client)
		case "unregister":
			h.unregisterClient(msg.Client)
		case "event":
			// 事件处理涉及存储 I/O，放到单独的 goroutine，
			// 避免阻塞 Hub 主循环。每个房间的顺序由
			// Session Manager 的锁保证，不依赖这里的处理顺序。
			go h.handleClientEvent(msg)
		default:
			log.Warnf("Hub: Received unknown message type: %s from user %d", msg.Type, msg.UserID)
		}
	}
	log.Info("Hub is shutting down...")
}

// registerClient 登记新连接。同一身份的旧连接被驱逐并断开。
func (h *Hub) registerClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to register a nil client")
		return
	}
	userID := client.UserID()
	logCtx := logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"action":  "registerClient",
	})

	h.clientsMu.Lock()
	if prev, ok := h.clients[userID]; ok && prev != client {
		// 驱逐旧连接：done 信号让其 WritePump 退出。
		// 不能关闭 send 通道，锁外的推送方可能正要向它写入。
		prev.shutdown()
		logCtx.Warn("Evicted previous connection for identity")
	}
	h.clients[userID] = client
	h.clientsMu.Unlock()
	logCtx.Info("Client registered to Hub")
}

// unregisterClient 移除连接。被驱逐的旧连接注销时不能误删新连接。
func (h *Hub) unregisterClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to unregister a nil client")
		return
	}
	userID := client.UserID()
	logCtx := logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"action":  "unregisterClient",
	})

	h.clientsMu.Lock()
	current, ok := h.clients[userID]
	if ok && current == client {
		delete(h.clients, userID)
		client.shutdown()
		logCtx.Info("Client unregistered from Hub")
	} else if ok {
		// 身份已被新连接接管，旧连接在驱逐时已收到关闭信号
		logCtx.Debug("Stale connection unregistered, identity already re-registered")
	}
	h.clientsMu.Unlock()
}

// handleClientEvent 解析事件信封并分发给对应的处理函数。
// 任何失败都转换为对来源连接的 error 推送，绝不让进程崩溃。
func (h *Hub) handleClientEvent(msg HubMessage) {
	ctx := context.Background()
	logCtx := logrus.WithFields(logrus.Fields{
		"user_id":   msg.UserID,
		"operation": "handleClientEvent",
	})

	var envelope Envelope
	if err := json.Unmarshal(msg.RawData, &envelope); err != nil {
		logCtx.WithError(err).Warn("Malformed event envelope")
		h.sendError(msg.UserID, "malformed message")
		return
	}
	logCtx = logCtx.WithField("event", envelope.Event)

	var err error
	switch envelope.Event {
	case EventSearchMatch:
		err = h.handleSearchMatch(ctx, msg.UserID, envelope.Data)
	case EventCancelSearch:
		err = h.handleCancelSearch(ctx, msg.UserID, envelope.Data)
	case EventReportResult:
		err = h.handleReportResult(ctx, msg.UserID, envelope.Data)
	default:
		logCtx.Warn("Unknown event name")
		err = errors.New("unknown event")
	}

	if err != nil {
		logCtx.WithError(err).Warn("Event handler failed")
		h.sendError(msg.UserID, err.Error())
	}
}

// handleSearchMatch 处理匹配请求。创建了等待房间则只通知请求者；
// 加入成功则先向双方宣布对手，再分发题目。
func (h *Hub) handleSearchMatch(ctx context.Context, userID uint, data json.RawMessage) error {
	if len(data) > 0 {
		var payload searchPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return errors.New("malformed search payload")
		}
		if err := checkIdentity(payload.PlayerID, userID); err != nil {
			return err
		}
	}

	result, err := h.matchService.RequestMatch(ctx, userID)
	if err != nil {
		return err
	}

	if result.Created {
		h.SendTo(userID, EventMatchCreated, map[string]interface{}{
			"partidaId": result.MatchID,
		})
		return nil
	}

	h.BroadcastToRoom(result.Players, EventMatchFound, map[string]interface{}{
		"partidaId": result.MatchID,
		"jugadores": result.Players,
	})
	h.BroadcastToRoom(result.Players, EventMatchReady, map[string]interface{}{
		"partidaId":      result.MatchID,
		"totalPreguntas": len(result.Questions),
		"preguntas":      result.Questions,
	})
	return nil
}

// handleCancelSearch 处理取消匹配。
func (h *Hub) handleCancelSearch(ctx context.Context, userID uint, data json.RawMessage) error {
	if len(data) > 0 {
		var payload searchPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return errors.New("malformed cancel payload")
		}
		if err := checkIdentity(payload.PlayerID, userID); err != nil {
			return err
		}
	}

	if err := h.matchService.CancelMatch(ctx, userID); err != nil {
		return err
	}
	h.SendTo(userID, EventMatchCancelled, map[string]interface{}{
		"motivo": "cancelada",
	})
	return nil
}

// handleReportResult 处理成绩上报。结算触发时向房间双方推送结果。
func (h *Hub) handleReportResult(ctx context.Context, userID uint, data json.RawMessage) error {
	var payload reportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return errors.New("malformed report payload")
	}
	if err := checkIdentity(payload.PlayerID, userID); err != nil {
		return err
	}

	settlement, err := h.matchService.ReportResult(ctx, payload.MatchID, userID, payload.Correct)
	if err != nil {
		return err
	}
	if settlement == nil {
		// 已记录，等待对手上报，无需推送
		return nil
	}
	h.broadcastSettlement(settlement)
	return nil
}

// broadcastSettlement 向结算涉及的双方推送最终结果。
func (h *Hub) broadcastSettlement(settlement *domain.Settlement) {
	participants := make([]uint, 0, len(settlement.Players))
	for _, p := range settlement.Players {
		participants = append(participants, p.UserID)
	}
	h.BroadcastToRoom(participants, EventMatchFinished, settlement)
}

// sendError 向指定身份推送 error 事件。
func (h *Hub) sendError(userID uint, message string) {
	h.SendTo(userID, EventError, map[string]string{"message": message})
}

// --- 公共方法 ---

// SendTo 向指定身份推送一个事件。身份不在线时静默丢弃，
// 这是网关的交付契约：至多一次，尽力而为。
func (h *Hub) SendTo(userID uint, event string, payload interface{}) {
	h.clientsMu.RLock()
	client, ok := h.clients[userID]
	h.clientsMu.RUnlock()
	if !ok {
		logrus.WithFields(logrus.Fields{"user_id": userID, "event": event}).Debug("Recipient not connected, push dropped")
		return
	}

	message, err := marshalEnvelope(event, payload)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "event": event}).WithError(err).Error("Failed to marshal push payload")
		return
	}

	// 非阻塞发送，避免单个慢客户端阻塞调用方
	select {
	case client.send <- message:
	default:
		logrus.WithFields(logrus.Fields{"user_id": userID, "event": event}).Warn("Client send channel full, push dropped")
	}
}

// BroadcastToRoom 向一组参与者逐个推送同一事件。
func (h *Hub) BroadcastToRoom(participants []uint, event string, payload interface{}) {
	for _, userID := range participants {
		h.SendTo(userID, event, payload)
	}
}

// QueueMessage 将消息放入 Hub 的处理队列 (非阻塞)。
// 这是 Client 向 Hub 发送消息的安全方式。
// 返回 true 如果消息成功入队，false 如果队列已满。
func (h *Hub) QueueMessage(msg HubMessage) bool {
	select {
	case h.messageChan <- msg:
		return true
	default:
		logrus.WithFields(logrus.Fields{
			"message_type": msg.Type,
			"user_id":      msg.UserID,
		}).Warn("Hub message channel full, dropping message")
		return false
	}
}

// marshalEnvelope 序列化一个外发事件信封。
func marshalEnvelope(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
