package controllers

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	h "eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

const (
	minPasswordLen = 8
	maxUsernameLen = 150
)

// RegisterRequest is the request body for POST /auth/register/
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (s RegisterRequest) Validate() map[string]string {
	errs := map[string]string{}
	username := strings.TrimSpace(s.Username)
	switch {
	case username == "":
		errs["username"] = "is required"
	case utf8.RuneCountInString(username) > maxUsernameLen:
		errs["username"] = "must be at most 150 characters"
	}
	email := strings.TrimSpace(s.Email)
	if email == "" {
		errs["email"] = "is required"
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs["email"] = "invalid email format"
	}
	if len(s.Password) < minPasswordLen {
		errs["password"] = "must be at least 8 characters"
	}
	return errs
}

// LoginRequest is the request body for POST /auth/login/
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(l.Username) == "" {
		errs["username"] = "is required"
	}
	if l.Password == "" {
		errs["password"] = "is required"
	}
	return errs
}

// LoginResponse is the data payload of POST /auth/login/
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// RegisterResponse is the data payload of POST /auth/register/
type RegisterResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

type AuthController struct {
	base
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{base: base{Logger: logger}, Service: svc}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user and returns a bearer token for it. A welcome email is sent best-effort.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse{data=controllers.RegisterResponse}
// @Failure 400 {object} helpers.APIError "bad_request or validation_failed"
// @Failure 409 {object} helpers.APIError "username already in use"
// @Failure 500 {object} helpers.APIError
// @Router /auth/register/ [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, RegisterResponse{Token: token, TokenType: "Bearer", User: user})
}

// Login godoc
// @Summary Log in
// @Description Exchanges a username and password for a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse{data=controllers.LoginResponse}
// @Failure 400 {object} helpers.APIError
// @Failure 401 {object} helpers.APIError "invalid credentials"
// @Failure 500 {object} helpers.APIError
// @Router /auth/login/ [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer"})
}
