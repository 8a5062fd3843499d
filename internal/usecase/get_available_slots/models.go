package get_available_slots

import (
	"time"

	"github.com/tkhmelev/RCP-FacilityService/pkg/types"
)

// Request модель запроса сетки слотов на день
type Request struct {
	FacilityID int64     // ID объекта
	Date       time.Time // Дата (без времени)
}

// Response модель ответа с сеткой слотов и занятостью
type Response struct {
	FacilityID   int64     // ID объекта
	FacilityName string    // Название объекта
	Date         time.Time // Дата, на которую запрашивались слоты
	SlotMinutes  int       // Длительность слота объекта
	Capacity     int       // Вместимость слота объекта
	Slots        []Slot    // Сетка слотов с занятостью
}

// Slot модель временного слота с занятостью
type Slot struct {
	StartTime   types.TimeString // Время начала слота
	EndTime     types.TimeString // Время конца слота (полуоткрытый интервал)
	BookedCount int              // Суммарный размер подтвержденных групп
	FreeSpots   int              // Свободные места
	Capacity    int              // Вместимость слота
}
