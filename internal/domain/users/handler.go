package users

import (
	"net/http"

	"vet-records/internal/middleware"
	"vet-records/internal/platform/httpx"
	"vet-records/internal/platform/logger"
	"vet-records/internal/platform/validate"
	"vet-records/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/juju/errors"
)

func RegisterRoutes(r chi.Router, svc *Service, scheme auth.Scheme, log logger.Logger) {
	r.Post("/register", registerHandler(svc, log))
	r.Post("/login", loginHandler(svc, scheme, log))
	r.Post("/logout", logoutHandler(scheme, log))

	r.Get("/user", currentUserHandler(svc, log))
	r.Get("/user/username", usernameHandler(svc, log))
}

type userResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    userResponse `json:"user"`
}

type usernameResponse struct {
	Username string `json:"username"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description El email debe terminar en uno de los dominios institucionales permitidos.
// @Tags users
// @Accept json
// @Produce json
// @Param body body object true "email, username, password"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /register [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := validate.Decode(r.Body)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		f := p.Fields()
		in := RegisterInput{
			Email:    f.String("email"),
			Username: f.String("username"),
			Password: f.RawString("password"),
		}
		if err := f.Err(); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		if _, err := svc.Register(r.Context(), in); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		httpx.WriteMessage(w, http.StatusCreated, "User registered successfully")
	}
}

// loginHandler godoc
// @Summary Login
// @Description Acepta email o username. Cualquier fallo responde el mismo 401.
// @Tags users
// @Accept json
// @Produce json
// @Param body body object true "email_or_username, password"
// @Success 200 {object} loginResponse
// @Failure 401 {object} map[string]string
// @Router /login [post]
func loginHandler(svc *Service, scheme auth.Scheme, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := validate.Decode(r.Body)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		f := p.Fields()
		identifier := f.String("email_or_username", "username", "email")
		password := f.RawString("password")
		if err := f.Err(); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		u, err := svc.Login(r.Context(), identifier, password)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		token, err := scheme.Establish(r.Context(), w, u.ID)
		if err != nil {
			httpx.WriteError(w, r, log, errors.Annotate(err, "establish credential"))
			return
		}

		httpx.WriteJSON(w, http.StatusOK, loginResponse{
			Message: "Login successful",
			Token:   token,
			User:    toUserResponse(u),
		})
	}
}

func logoutHandler(scheme auth.Scheme, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := scheme.Revoke(w, r); err != nil {
			httpx.WriteError(w, r, log, errors.Annotate(err, "revoke credential"))
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Logout successful")
	}
}

// currentUserHandler godoc
// @Summary Usuario actual
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /user [get]
func currentUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(w, r, svc, log)
		if !ok {
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func usernameHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(w, r, svc, log)
		if !ok {
			return
		}
		httpx.WriteJSON(w, http.StatusOK, usernameResponse{Username: u.Username})
	}
}

// currentUser resuelve la identidad del request y escribe la respuesta de
// error si no hay. Credencial válida con subject mal formado => 422.
func currentUser(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger) (User, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		err := middleware.AuthError(r.Context())
		switch {
		case err != nil && errors.Is(err, errors.NotValid):
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, err.Error())
		case err != nil && errors.Is(err, errors.Unauthorized):
			httpx.WriteError(w, r, log, err)
		default:
			httpx.WriteError(w, r, log, middleware.ErrAuthRequired)
		}
		return User{}, false
	}

	u, err := svc.GetByID(r.Context(), claims.UserID)
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return User{}, false
	}
	return u, true
}

func toUserResponse(u User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Username: u.Username}
}
