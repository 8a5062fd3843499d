package notifier

import (
	"sync"

	"github.com/tkhmelev/RCP-FacilityService/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Hub хранит подписчиков по объектам и рассылает им события.
// Рассылка неблокирующая: если буфер подписчика заполнен, событие
// для него отбрасывается — медленный наблюдатель не может задержать
// путь создания или отмены бронирования.
type Hub struct {
	mu         sync.RWMutex
	subs       map[int64]map[chan Event]struct{} // facilityID -> подписчики
	bufferSize int
	log        Logger
	metrics    *metrics.Metrics
}

// NewHub создает hub с указанным размером буфера подписчика
func NewHub(bufferSize int, log Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	return &Hub{
		subs:       make(map[int64]map[chan Event]struct{}),
		bufferSize: bufferSize,
		log:        log,
	}
}

// WithMetrics включает сбор метрик рассылки (опционально)
func (h *Hub) WithMetrics(m *metrics.Metrics) *Hub {
	h.metrics = m
	return h
}

// Subscribe регистрирует наблюдателя за изменениями бронирований объекта.
// Возвращает канал событий и функцию отписки. События, произошедшие до
// подписки, не доставляются: подключившийся наблюдатель обязан сначала
// перечитать текущее состояние.
func (h *Hub) Subscribe(facilityID int64) (<-chan Event, func()) {
	ch := make(chan Event, h.bufferSize)

	h.mu.Lock()
	if h.subs[facilityID] == nil {
		h.subs[facilityID] = make(map[chan Event]struct{})
	}
	h.subs[facilityID][ch] = struct{}{}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.NotifierSubscribers.WithLabelValues("websocket").Inc()
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[facilityID], ch)
			if len(h.subs[facilityID]) == 0 {
				delete(h.subs, facilityID)
			}
			h.mu.Unlock()
			close(ch)

			if h.metrics != nil {
				h.metrics.NotifierSubscribers.WithLabelValues("websocket").Dec()
			}
		})
	}

	return ch, cancel
}

// SubscriberCount возвращает число подписчиков объекта
func (h *Hub) SubscriberCount(facilityID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[facilityID])
}

// Publish рассылает событие всем текущим подписчикам объекта.
// Никогда не блокируется и не возвращает ошибку.
func (h *Hub) Publish(ev Event) {
	if h.metrics != nil {
		h.metrics.NotifierEventsTotal.WithLabelValues(string(ev.Type)).Inc()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[ev.FacilityID] {
		select {
		case ch <- ev:
		default:
			// Буфер подписчика заполнен - событие для него теряется,
			// наблюдатель догонит состояние при следующем обновлении
			h.log.Warn("notifier: subscriber buffer full, dropping %s event for facility=%d", ev.Type, ev.FacilityID)
			if h.metrics != nil {
				h.metrics.NotifierDroppedTotal.WithLabelValues(string(ev.Type)).Inc()
			}
		}
	}
}

// BookingChanged реализует интерфейс Notifier слоев usecase/service
func (h *Hub) BookingChanged(ev Event) {
	h.Publish(ev)
}
