package handlers

import (
	"errors"
	"net/http"

	"prop-server/auth"
	"prop-server/models"
	"prop-server/service"
	"prop-server/validation"

	log "github.com/sirupsen/logrus"
)

// writeFailure carries the submitted form back so the client can retry
// without re-entering it.
type writeFailure struct {
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors,omitempty"`
	Payload interface{}       `json:"payload"`
}

type AccountHandler struct {
	accountService *services.AccountService
}

func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateInquiry handles POST /v1/inquiries
func (h *AccountHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var form models.InquiryForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.accountService.SubmitInquiry(r.Context(), form)
	if err != nil {
		writeWriteFailure(w, err, form)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// RegisterUser handles POST /v1/register
func (h *AccountHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var form models.UserRegistrationForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reg, err := h.accountService.RegisterUser(r.Context(), form)
	if err != nil {
		form.Password, form.ConfirmPassword = "", ""
		writeWriteFailure(w, err, form)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// RegisterAgent handles POST /v1/agents
func (h *AccountHandler) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	var form models.AgentRegistrationForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.accountService.RegisterAgent(r.Context(), form)
	if err != nil {
		form.Password, form.ConfirmPassword = "", ""
		writeWriteFailure(w, err, form)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// GetProfile handles GET /v1/me with an "Authorization: Bearer <token>" header.
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.accountService.Profile(r.Header.Get("Authorization"))
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			writeError(w, http.StatusUnauthorized, "Session expired")
			return
		}
		writeError(w, http.StatusUnauthorized, "Not signed in")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// PasswordStrength handles POST /v1/password-strength with a {"password"} body.
func (h *AccountHandler) PasswordStrength(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"strength": validation.PasswordStrength(body.Password)})
}

func writeWriteFailure(w http.ResponseWriter, err error, payload interface{}) {
	if failure, ok := validation.AsFailure(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, writeFailure{
			Error:   "Please correct the highlighted fields",
			Errors:  failure.Fields,
			Payload: payload,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrEmailExists):
		writeJSON(w, http.StatusConflict, writeFailure{Error: services.ErrEmailExists.Error(), Payload: payload})
	case errors.Is(err, services.ErrUsernameExists):
		writeJSON(w, http.StatusConflict, writeFailure{Error: services.ErrUsernameExists.Error(), Payload: payload})
	default:
		log.Println("Error writing to listing repository:", err)
		writeJSON(w, http.StatusBadGateway, writeFailure{Error: err.Error(), Payload: payload})
	}
}
