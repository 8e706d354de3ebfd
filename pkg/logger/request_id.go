package logger

import (
	"context"

	"github.com/google/uuid"
)

// MaxRequestIDLength - максимальная длина принимаемого извне идентификатора запроса.
const MaxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext кладет в контекст идентификатор запроса. Пустой или
// недопустимый идентификатор заменяется новым UUID.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if !ValidRequestID(requestID) {
		requestID = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// ValidRequestID сообщает, можно ли писать идентификатор в логи и заголовки как есть:
// непустой, не длиннее MaxRequestIDLength, только буквы ASCII, цифры и "-_.:".
func ValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch ch := id[i]; {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.', ch == ':':
		default:
			return false
		}
	}
	return true
}
