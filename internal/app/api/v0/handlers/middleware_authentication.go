package handlers

import (
	"net/http"

	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/app/api/v0/model"
	"github.com/railflow/railflow-portal/internal/domain"
)

type AuthenticationHandler struct {
	session Session
}

func NewAuthenticationHandler(session Session) AuthenticationHandler {
	return AuthenticationHandler{session: session}
}

// LoggedIn checks if a controller is logged in.
func (h AuthenticationHandler) LoggedIn() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data := h.session.GetData(r.Context())

			if !data.Gate.Authenticated {
				respond.JSON(w, http.StatusUnauthorized,
					model.Error{Code: http.StatusUnauthorized, Message: "not logged in"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Ready checks if the controller completed direction selection and train configuration.
func (h AuthenticationHandler) Ready() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data := h.session.GetData(r.Context())

			switch data.Gate.State() {
			case domain.StateUnauthenticated:
				respond.JSON(w, http.StatusUnauthorized,
					model.Error{Code: http.StatusUnauthorized, Message: "not logged in"})
				return
			case domain.StateReady:
				next.ServeHTTP(w, r)
			default:
				respond.JSON(w, http.StatusForbidden, model.Error{
					Code:    http.StatusForbidden,
					Message: "setup not completed",
					Details: string(data.Gate.View()),
				})
			}
		})
	}
}
