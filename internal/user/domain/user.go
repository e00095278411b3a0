package domain

import "time"

// User is an account record plus its onboarding progress and trial state.
// PasswordHash is never serialized.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FullName       string    `json:"fullName,omitempty"`
	ReceiveUpdates bool      `json:"receiveUpdates"`
	CurrentStep    int       `json:"currentStep"`
	TrialActive    bool      `json:"trialActive"`
	TrialStartDate time.Time `json:"trialStartDate"`
	TrialEndDate   time.Time `json:"trialEndDate"`
	PaymentAdded   bool      `json:"paymentAdded"`
	CreatedAt      time.Time `json:"createdAt"`
}
