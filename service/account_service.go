package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prop-server/api"
	"prop-server/api/listings"
	"prop-server/auth"
	"prop-server/models"
	"prop-server/validation"

	log "github.com/sirupsen/logrus"
)

var (
	ErrEmailExists    = errors.New("Email already exists")
	ErrUsernameExists = errors.New("Username already exists")
)

// ErrRejected is wrapped when the repository answered with success=false.
var ErrRejected = errors.New("request rejected")

// Registration is a created account and the credential issued for it.
type Registration struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type AccountService struct {
	listingAPI listings.ListingAPI
	auth       *auth.Service
}

func NewAccountService(listingAPI listings.ListingAPI, authService *auth.Service) *AccountService {
	return &AccountService{listingAPI: listingAPI, auth: authService}
}

// SubmitInquiry validates form and posts it as a viewing request.
func (as *AccountService) SubmitInquiry(ctx context.Context, form models.InquiryForm) (*models.WriteResult, error) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)
	form.PhoneNumber = strings.TrimSpace(form.PhoneNumber)
	if err := validation.ValidateInquiry(form); err != nil {
		return nil, err
	}

	req := models.InquiryRequest{
		FullName:    form.FullName,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		InquiryType: models.InquiryTypeViewingRequest,
		PropertyID:  form.PropertyID,
	}
	if msg := strings.TrimSpace(form.Message); msg != "" {
		req.Message = &msg
	}

	res, err := as.listingAPI.CreateInquiry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit inquiry: %w", err)
	}
	if !res.Success {
		return res, fmt.Errorf("%w: %s", ErrRejected, res.Message)
	}
	log.Printf("[AccountService] Inquiry submitted for listing %d", form.PropertyID)
	return res, nil
}

// RegisterUser creates a visitor account and issues its session credential.
func (as *AccountService) RegisterUser(ctx context.Context, form models.UserRegistrationForm) (*Registration, error) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)
	form.PhoneNumber = strings.TrimSpace(form.PhoneNumber)
	if err := validation.ValidateUserRegistration(form); err != nil {
		return nil, err
	}

	res, err := as.listingAPI.RegisterUser(ctx, models.UserRegistrationRequest{
		FullName:    form.FullName,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Password:    form.Password,
	})
	if err != nil {
		return nil, classifyConflict(fmt.Errorf("failed to register user: %w", err))
	}
	if !res.Success {
		return nil, classifyConflict(fmt.Errorf("%w: %s", ErrRejected, res.Message))
	}

	user := models.User{
		ID:          resultID(res),
		FullName:    form.FullName,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
	}
	token, err := as.auth.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	log.Printf("[AccountService] Registered user %s", user.Email)
	return &Registration{User: user, Token: token}, nil
}

// RegisterAgent creates an agent account. Agents sign in elsewhere, so no
// credential is issued.
func (as *AccountService) RegisterAgent(ctx context.Context, form models.AgentRegistrationForm) (*models.WriteResult, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)
	form.PhoneNumber = strings.TrimSpace(form.PhoneNumber)
	if err := validation.ValidateAgentRegistration(form); err != nil {
		return nil, err
	}

	res, err := as.listingAPI.RegisterAgent(ctx, models.AgentRegistrationRequest{
		Username:    form.Username,
		Password:    form.Password,
		FullName:    form.FullName,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
	})
	if err != nil {
		return nil, classifyConflict(fmt.Errorf("failed to register agent: %w", err))
	}
	if !res.Success {
		return nil, classifyConflict(fmt.Errorf("%w: %s", ErrRejected, res.Message))
	}
	log.Printf("[AccountService] Registered agent %s", form.Username)
	return res, nil
}

// Profile returns the user carried by a session credential.
func (as *AccountService) Profile(token string) (*models.User, error) {
	return as.auth.Parse(token)
}

// classifyConflict maps duplicate-account answers onto ErrEmailExists and
// ErrUsernameExists, keeping err in the chain.
func classifyConflict(err error) error {
	text := err.Error()
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		text += " " + apiErr.Body
	}
	switch {
	case strings.Contains(text, ErrEmailExists.Error()):
		return fmt.Errorf("%w: %w", ErrEmailExists, err)
	case strings.Contains(text, ErrUsernameExists.Error()):
		return fmt.Errorf("%w: %w", ErrUsernameExists, err)
	}
	return err
}

func resultID(res *models.WriteResult) string {
	if res.Data == nil {
		return ""
	}
	if data, ok := res.Data["data"].(map[string]interface{}); ok {
		if id := idString(data["id"]); id != "" {
			return id
		}
	}
	return idString(res.Data["id"])
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	}
	return ""
}
