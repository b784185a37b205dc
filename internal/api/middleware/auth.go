package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

type ctxKey string

const (
	userIDKey   ctxKey = "userID"
	userRoleKey ctxKey = "userRole"

	// HeaderUserID заголовок с ID аутентифицированного пользователя
	HeaderUserID = "X-User-ID"
	// HeaderUserRole заголовок с ролью пользователя: client, staff или admin
	HeaderUserRole = "X-User-Role"
)

// Auth извлекает X-User-ID и X-User-Role из заголовков и кладёт их в контекст.
// Аутентификацию выполняет API gateway, здесь только разбор заголовков
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			http.Error(w, `{"error":"отсутствует заголовок X-User-ID"}`, http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, `{"error":"некорректный заголовок X-User-ID"}`, http.StatusUnauthorized)
			return
		}

		role := domain.Role(r.Header.Get(HeaderUserRole))
		if role == "" {
			role = domain.RoleClient
		}
		if !role.IsValid() {
			http.Error(w, `{"error":"некорректный заголовок X-User-Role"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole возвращает роль пользователя из контекста
func GetUserRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.Role)
	return role, ok
}
