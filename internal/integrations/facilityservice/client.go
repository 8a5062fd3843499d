package facilityservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом управления объектами
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetFacility получает объект по ID и резолвит дефолты конфигурации
// (slotMinutes, capacity) в доменную модель
func (c *Client) GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error) {
	url := fmt.Sprintf("%s/internal/facilities/%d", c.baseURL, facilityID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid facility ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrFacilityNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var facility Facility
	if err := json.NewDecoder(resp.Body).Decode(&facility); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return toDomainFacility(&facility), nil
}

// toDomainFacility конвертирует ответ сервиса в доменную модель.
// Дефолты конфигурации резолвятся здесь один раз, дальше по коду
// значения всегда заполнены.
func toDomainFacility(f *Facility) *domain.Facility {
	slotMinutes := domain.DefaultSlotMinutes
	if f.SlotMinutes != nil && *f.SlotMinutes > 0 {
		slotMinutes = *f.SlotMinutes
	}

	capacity := domain.DefaultCapacity
	if f.Capacity != nil && *f.Capacity > 0 {
		capacity = *f.Capacity
	}

	return &domain.Facility{
		ID:              f.ID,
		Name:            f.Name,
		OperatingWindow: f.OperatingWindow,
		SlotMinutes:     slotMinutes,
		Capacity:        capacity,
		OperatorIDs:     f.OperatorIDs,
	}
}
