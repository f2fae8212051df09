package api

import "time"

// Medication is the wire representation of a tracked medication
type Medication struct {
	ID        string    `json:"id"`       // server-assigned identifier (e.g. "med_551")
	Name      string    `json:"name"`     // display name (e.g. "Metoprolol")
	Dose      string    `json:"dose"`     // dose description (e.g. "50mg")
	Schedule  string    `json:"schedule"` // free-form schedule ("morning", "2x daily")
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MedicationRequest represents a create or update request for a medication
type MedicationRequest struct {
	Name     string `json:"name"`
	Dose     string `json:"dose"`
	Schedule string `json:"schedule"`
	Notes    string `json:"notes,omitempty"`
}

// MedicationResponse represents the server response for a single medication
type MedicationResponse struct {
	Medication Medication `json:"medication"`
}

// MedicationListResponse represents the authoritative medication list
type MedicationListResponse struct {
	Medications []Medication `json:"medications"`
}
