package subscribe_changes

import (
	"github.com/tkhmelev/RCP-FacilityService/internal/notifier"
)

// ChangeHub интерфейс локального концентратора событий изменений
type ChangeHub interface {
	Subscribe(facilityID int64) (<-chan notifier.Event, func())
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
