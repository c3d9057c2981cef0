package dto

import "github.com/jsamuelsen/quote-digest/internal/domain"

// MessagePreferencesSaved is the success message for a preferences update.
const MessagePreferencesSaved = "Preferences saved"

// PreferencesRequest is the body of PUT /api/v1/preferences.
type PreferencesRequest struct {
	Email        string `json:"email"        validate:"required,max=320"`
	DeliveryTime string `json:"deliveryTime" validate:"required,wholehour"`
	Timezone     string `json:"timezone"     validate:"required,timezone"`
	Frequency    string `json:"frequency"    validate:"required,oneof=daily weekdays custom"`
	CustomDays   []int  `json:"customDays"   validate:"omitempty,max=7,dive,min=0,max=6"`
}

// ToDomain converts the request. The user is resolved later from Email.
func (r *PreferencesRequest) ToDomain() domain.Preferences {
	return domain.Preferences{
		DeliveryTime: r.DeliveryTime,
		Timezone:     r.Timezone,
		Frequency:    domain.Frequency(r.Frequency),
		CustomDays:   r.CustomDays,
	}
}

// PreferencesResponse echoes the stored preferences.
type PreferencesResponse struct {
	Message      string `json:"message"`
	DeliveryTime string `json:"deliveryTime"`
	Timezone     string `json:"timezone"`
	Frequency    string `json:"frequency"`
	CustomDays   []int  `json:"customDays,omitempty"`
}

// NewPreferencesResponse builds the success body.
func NewPreferencesResponse(p *domain.Preferences) *PreferencesResponse {
	return &PreferencesResponse{
		Message:      MessagePreferencesSaved,
		DeliveryTime: p.DeliveryTime,
		Timezone:     p.Timezone,
		Frequency:    string(p.Frequency),
		CustomDays:   p.CustomDays,
	}
}
