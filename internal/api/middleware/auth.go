package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/VenueBookingService/internal/api/handlers"
	"github.com/m04kA/VenueBookingService/internal/domain"
)

const (
	HeaderUserID = "X-User-ID"
	HeaderRole   = "X-User-Role"
	HeaderClubID = "X-Club-ID"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgInvalidRole   = "некорректная роль пользователя"
	msgInvalidClubID = "для роли club нужен корректный заголовок X-Club-ID"
)

type callerKey struct{}

// Auth извлекает пользователя из заголовков, которые выставляет шлюз, и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		caller := domain.Caller{UserID: userID, Role: domain.Role(r.Header.Get(HeaderRole))}

		switch caller.Role {
		case domain.RoleAdmin:
		case domain.RoleClub:
			clubID, err := strconv.ParseInt(r.Header.Get(HeaderClubID), 10, 64)
			if err != nil || clubID <= 0 {
				handlers.RespondUnauthorized(w, msgInvalidClubID)
				return
			}
			caller.ClubID = &clubID
		default:
			handlers.RespondForbidden(w, msgInvalidRole)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

// WithCaller кладет пользователя в контекст
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCaller возвращает пользователя из контекста
func GetCaller(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	return caller, ok
}
