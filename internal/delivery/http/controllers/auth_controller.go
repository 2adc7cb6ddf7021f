package controllers

import (
	"log/slog"
	"net/http"

	h "evently/internal/delivery/http/helpers"
	"evently/internal/delivery/http/middleware"
	"evently/internal/domain"
)

// RegisterRequest is the request body for POST /auth/register.
// Field rules are enforced by the auth service so their messages stay in one place.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	return h.ValidateStruct(l)
}

// ForgotPasswordRequest is the request body for POST /auth/forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Validate implements Validator.
func (f ForgotPasswordRequest) Validate() []string {
	return h.ValidateStruct(f)
}

// ResetPasswordRequest is the request body for POST /auth/reset-password
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=6"`
}

// Validate implements Validator.
func (rp ResetPasswordRequest) Validate() []string {
	return h.ValidateStruct(rp)
}

// ChangeRoleResponse is the response body for PUT /auth/change-role/{userId}
type ChangeRoleResponse struct {
	Msg  string            `json:"msg"`
	User domain.PublicUser `json:"user"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
	// ExposeErrors reveals the cause of server errors to clients. Development only.
	ExposeErrors bool
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, exposeErrors bool) *AuthController {
	return &AuthController{
		Logger:       logger,
		Service:      svc,
		ExposeErrors: exposeErrors,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create an attendee account. Name is required, email must be valid and the password at least 6 characters.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.APIError "code: bad_request or conflict"
// @Failure 429 {object} helpers.APIError "code: too_many_requests"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /auth/register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, err := c.Service.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "User registered successfully")
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns a bearer token valid for one hour and the public user.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} domain.LoginResult
// @Failure 400 {object} helpers.APIError "code: bad_request or invalid_credentials"
// @Failure 429 {object} helpers.APIError "code: too_many_requests"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

// Me godoc
// @Summary Current user
// @Description Returns the authenticated user.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.PublicUser
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, domain.ErrInvalidToken, false)
		return
	}
	h.WriteJSON(w, http.StatusOK, user.Public())
}

// ChangeRole godoc
// @Summary Promote a user to organizer
// @Description Organizer only. Promotion is one way; promoting an organizer again is rejected.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID (UUID)"
// @Success 200 {object} controllers.ChangeRoleResponse
// @Failure 400 {object} helpers.APIError "code: invalid_state"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /auth/change-role/{userId} [put]
func (c *AuthController) ChangeRole(w http.ResponseWriter, r *http.Request) {
	user, err := c.Service.ChangeRole(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ChangeRoleResponse{
		Msg:  "User role updated to organizer",
		User: user.Public(),
	})
}

// ForgotPassword godoc
// @Summary Request a password reset code
// @Description Mails a 6 digit code valid for 15 minutes to a registered address.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ForgotPasswordRequest true "Account email"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 429 {object} helpers.APIError "code: too_many_requests"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Password reset code sent")
}

// ResetPassword godoc
// @Summary Reset a password
// @Description Consumes a reset code and sets a new password.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Email, code and new password"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 429 {object} helpers.APIError "code: too_many_requests"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.ResetPassword(r.Context(), req.Email, req.Code, req.Password); err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Password has been reset")
}
