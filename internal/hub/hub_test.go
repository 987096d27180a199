package hub

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHub 构造一个只用于连接登记的 Hub，事件分发不参与。
func newTestHub() *Hub {
	return &Hub{
		messageChan: make(chan HubMessage, 8),
		clients:     make(map[uint]*Client),
	}
}

func TestHub_RegisterEvictsDuplicateConnection(t *testing.T) {
	h := newTestHub()
	prev := NewClient(h, nil, 7)
	h.registerClient(prev)

	// 驱逐期间持续推送：推送方绝不能因驱逐而崩溃
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				h.SendTo(7, EventError, map[string]string{"message": "busy"})
			}
		}
	}()

	next := NewClient(h, nil, 7)
	h.registerClient(next)
	close(stop)
	wg.Wait()

	// 旧连接收到关闭信号，新连接接管身份
	select {
	case <-prev.done:
	default:
		t.Fatal("被驱逐的连接未收到关闭信号")
	}
	h.clientsMu.RLock()
	current := h.clients[7]
	h.clientsMu.RUnlock()
	assert.Same(t, next, current)

	// 接管后的推送到达新连接
	for len(next.send) > 0 {
		<-next.send
	}
	h.SendTo(7, EventMatchCreated, map[string]interface{}{"partidaId": 1})
	require.Len(t, next.send, 1)

	// 被驱逐连接的滞后注销不得误删新连接
	h.unregisterClient(prev)
	h.clientsMu.RLock()
	current = h.clients[7]
	h.clientsMu.RUnlock()
	assert.Same(t, next, current)
}

func TestCheckIdentity(t *testing.T) {
	// 载荷未携带 ID (0) 时放行，携带时必须与连接身份一致
	assert.NoError(t, checkIdentity(0, 7))
	assert.NoError(t, checkIdentity(7, 7))
	assert.ErrorIs(t, checkIdentity(8, 7), errIdentityMismatch)
}

func TestMarshalEnvelope(t *testing.T) {
	raw, err := marshalEnvelope(EventMatchCreated, map[string]interface{}{
		"partidaId": 42,
	})
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, EventMatchCreated, envelope.Event)
	assert.JSONEq(t, `{"partidaId":42}`, string(envelope.Data))
}

func TestReportPayloadFieldNames(t *testing.T) {
	raw := []byte(`{"partidaId":3,"idJugador":9,"totalAciertos":6}`)

	var payload reportPayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, uint(3), payload.MatchID)
	assert.Equal(t, uint(9), payload.PlayerID)
	assert.Equal(t, 6, payload.Correct)
}
