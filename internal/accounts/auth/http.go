// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wh64dev/wh64-api/internal/platform/middleware"
	requestutil "github.com/wh64dev/wh64-api/internal/platform/request"
	"github.com/wh64dev/wh64-api/internal/platform/respond"
	"github.com/wh64dev/wh64-api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the account and session HTTP endpoints.
//
// This layer is strictly responsible for transport concerns (status codes,
// headers, JSON); all credential and trust decisions live in [Service],
// [TokenIssuer], and [Verifier].
type Handler struct {
	accountService *Service
	tokenIssuer    *TokenIssuer
	verifier       *Verifier
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, tokenIssuer *TokenIssuer, verifier *Verifier) *Handler {
	return &Handler{
		accountService: service,
		tokenIssuer:    tokenIssuer,
		verifier:       verifier,
	}
}

// Routes returns a [chi.Router] configured with account-specific routes.
//
// # Endpoints
//   - POST   /register       : Creates a new account.
//   - POST   /login          : Authenticates and returns a session token.
//   - POST   /refresh        : Issues a fresh token, revoking older ones.
//   - GET    /me             : Returns the authenticated account.
//   - DELETE /me             : Deletes the authenticated account.
//   - PATCH  /email          : Changes the email address.
//   - PATCH  /password       : Changes the password.
//   - POST   /verify/request : Sends a verification code by email.
//   - POST   /verify/confirm : Confirms a verification code.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/refresh", handler.refresh)
		r.Get("/me", handler.me)
		r.Delete("/me", handler.deleteAccount)
		r.Patch("/email", handler.changeEmail)
		r.Patch("/password", handler.changePassword)
		r.Post("/verify/request", handler.requestVerification)
		r.Post("/verify/confirm", handler.confirmVerification)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changeEmailRequest struct {
	Email string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type confirmVerificationRequest struct {
	Code string `json:"code"`
}

// sessionResponse is the login/refresh payload.
type sessionResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	User        *Account `json:"user"`
}

func newSessionResponse(token string, account *Account) sessionResponse {
	return sessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(TokenValidity.Seconds()),
		User:        account,
	}
}

// # Handlers

/*
Register handles the creation of a new account.

POST /v1/auth/register

Request:
  - Body: registerRequest (Username, Email, Password)

Response:
  - 201: Account: Created account
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, 50).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, 100).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, account)
}

/*
Login authenticates an account and issues a session token.

POST /v1/auth/login

Issuing the token advances last_login, so every previously issued token for
the account stops verifying.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: sessionResponse: Token, expiry, and account
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.Authenticate(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.tokenIssuer.Issue(request.Context(), account)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(token, account))
}

/*
Refresh rotates the session: a new token is issued and all older tokens,
including the one that authenticated this request, are revoked.

POST /v1/auth/refresh
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.FindByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.tokenIssuer.Issue(request.Context(), account)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(token, account))
}

/*
Me returns the authenticated account's profile.

GET /v1/auth/me
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.FindByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
DeleteAccount removes the authenticated account. Pending verification codes
go with it, and every outstanding token stops verifying immediately.

DELETE /v1/auth/me
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Delete(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
ChangeEmail updates the email address and clears the verified flag.

PATCH /v1/auth/email
*/
func (handler *Handler) changeEmail(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeEmailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, 100)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.UpdateEmail(request.Context(), userID, input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.FindByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
ChangePassword verifies the current password and installs a new one. Existing
tokens stay valid; the client may call refresh to rotate the lineage.

PATCH /v1/auth/password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Password changed"})
}

/*
RequestVerification issues a verification code and emails it to the account's
address.

POST /v1/auth/verify/request

Response:
  - 200: message envelope
  - 403: ALREADY_VERIFIED or CODE_PENDING
*/
func (handler *Handler) requestVerification(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.FindByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.verifier.Request(request.Context(), account); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Verification code sent"})
}

/*
ConfirmVerification consumes a submitted code and marks the account verified.

POST /v1/auth/verify/confirm

Response:
  - 200: message envelope
  - 403: CODE_MISMATCH or CODE_EXPIRED
*/
func (handler *Handler) confirmVerification(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input confirmVerificationRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCode, input.Code).
		Digits(FieldCode, input.Code, CodeLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.verifier.Confirm(request.Context(), userID, input.Code); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Account verified"})
}
