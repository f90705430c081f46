package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub-id/leave-backend-go/internal/domain/auth"
	"github.com/staffhub-id/leave-backend-go/internal/domain/user"
)

// actorFromRequest builds the acting identity from verified token claims.
// Request payloads never carry identity.
func actorFromRequest(r *http.Request) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Actor{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, auth.ErrInvalidToken
	}

	actor := user.Actor{UserID: userID}
	if employeeID, ok := claims["employee_id"].(string); ok {
		actor.EmployeeID = employeeID
	}
	if role, ok := claims["role"].(string); ok {
		actor.Role = user.Role(role)
	}

	return actor, nil
}
