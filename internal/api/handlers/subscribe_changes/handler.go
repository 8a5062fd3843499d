package subscribe_changes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/tkhmelev/RCP-FacilityService/internal/api/handlers"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"

	// writeWait максимальное время записи одного сообщения
	writeWait = 10 * time.Second

	// pingPeriod период keepalive-пингов, должен быть меньше pongWait
	pingPeriod = 45 * time.Second

	// pongWait максимальное время ожидания pong от клиента
	pongWait = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Проверка Origin выполняется на API-шлюзе
		return true
	},
}

type Handler struct {
	hub    ChangeHub
	logger Logger
}

func NewHandler(hub ChangeHub, logger Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// changeMessage сообщение подписчику: подсказка перечитать сетку слотов
type changeMessage struct {
	Type       string `json:"type"`
	FacilityID int64  `json:"facilityId"`
	Date       string `json:"date"`
}

// Handle GET /api/v1/facilities/{facilityId}/changes
// Апгрейдит соединение до WebSocket и транслирует события изменений
// бронирований объекта. Доставка best-effort: события, не влезшие в
// буфер подписчика, отбрасываются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityIDStr := vars["facilityId"]

	facilityID, err := strconv.ParseInt(facilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("WS /facilities/{id}/changes - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам пишет ответ клиенту
		h.logger.Warn("WS /facilities/{id}/changes - Upgrade failed: facility_id=%d, error=%v", facilityID, err)
		return
	}

	events, cancel := h.hub.Subscribe(facilityID)
	defer cancel()

	h.logger.Info("WS /facilities/{id}/changes - Subscriber connected: facility_id=%d, remote=%s",
		facilityID, conn.RemoteAddr())

	// read pump: входящие сообщения игнорируются, но чтение нужно для
	// обработки close-фреймов и pong
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}

			msg := changeMessage{
				Type:       string(ev.Type),
				FacilityID: ev.FacilityID,
				Date:       ev.Date,
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Info("WS /facilities/{id}/changes - Subscriber disconnected: facility_id=%d, error=%v",
					facilityID, err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			h.logger.Info("WS /facilities/{id}/changes - Subscriber closed connection: facility_id=%d", facilityID)
			return

		case <-r.Context().Done():
			return
		}
	}
}
