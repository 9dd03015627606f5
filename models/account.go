package models

// User is the logged-in profile carried by the session credential.
type User struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// UserRegistrationForm is submitted by visitors creating an account.
type UserRegistrationForm struct {
	FullName        string `json:"fullName" validate:"min=3"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"required,len=10,number"`
	Password        string `json:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	AgreedToTerms   bool   `json:"agreedToTerms" field:"terms" validate:"accepted"`
}

// UserRegistrationRequest is the body posted to /auth/user/register.
type UserRegistrationRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// AgentRegistrationForm is submitted by agents creating an account.
type AgentRegistrationForm struct {
	Username        string `json:"username" validate:"required,min=3"`
	FullName        string `json:"fullName" validate:"min=3"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"required,len=10,number"`
	Password        string `json:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// AgentRegistrationRequest is the body posted to /admin/agents.
type AgentRegistrationRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// WriteResult is the success/failure envelope returned by write endpoints.
type WriteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	// Data holds the decoded body when the repository returned something other than the envelope.
	Data map[string]interface{} `json:"data,omitempty"`
}
