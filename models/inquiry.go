package models

const InquiryTypeViewingRequest = "VIEWING_REQUEST"

// InquiryForm is what the client submits about a listing.
type InquiryForm struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,len=10,number"`
	Message     string `json:"message,omitempty"`
	PropertyID  int64  `json:"propertyId" validate:"gt=0"`
}

// InquiryRequest is the body posted to /inquiries.
type InquiryRequest struct {
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	Message     *string `json:"message,omitempty"`
	InquiryType string  `json:"inquiryType"`
	PropertyID  int64   `json:"propertyId"`
	UserID      *string `json:"userId"`
}
