package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/services"
)

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authPayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type profilePayload struct {
	User *models.User `json:"user"`
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "ok", nil)
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := a.users.Register(r.Context(), services.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	loggerFrom(r.Context()).Info(r.Context(), "registered", "user_id", sess.User.ID)
	writeData(w, http.StatusCreated, "Registration successful", authPayload{User: sess.User, Token: sess.Token})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fields := map[string][]string{}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = []string{"The email field is required."}
	}
	if req.Password == "" {
		fields["password"] = []string{"The password field is required."}
	}
	if len(fields) > 0 {
		v := &services.ValidationError{Fields: fields}
		writeError(w, http.StatusUnprocessableEntity, v.Error(), v.Fields)
		return
	}

	sess, err := a.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnprocessableEntity, msgInvalidCredentials, nil)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, "Login successful", authPayload{User: sess.User, Token: sess.Token})
}

func (a *API) profile(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	user, err := a.users.Profile(r.Context(), claims.UserID)
	if err != nil {
		// a valid token for a deleted account
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, msgUnauthenticated, nil)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, "", profilePayload{User: user})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	if err := a.users.Logout(r.Context(), claims); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Logged out successfully", nil)
}
