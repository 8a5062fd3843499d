package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tkhmelev/RCP-FacilityService/internal/api/handlers"
)

const msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"

// HeaderUserID заголовок с идентификатором пользователя портала.
// Проставляется API-шлюзом после проверки сессии жителя.
const HeaderUserID = "X-User-ID"

type ctxKey struct{}

var userIDKey ctxKey

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth требует валидный заголовок X-User-ID и кладет ID пользователя
// в контекст запроса
func Auth(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderUserID)
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				log.Warn("%s %s - missing or invalid %s header: %q", r.Method, r.URL.Path, HeaderUserID, raw)
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID пользователя, положенный Auth middleware
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
