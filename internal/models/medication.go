package models

// Medication represents a tracked medication in local view state.
//
// Identity is either LocalID (optimistic, not yet confirmed by the server)
// or ServerID (confirmed) - exactly one of the two is set at any time.
// The coordinator swaps LocalID for ServerID in a single view replacement
// once the server acknowledges the record.
type Medication struct {
	LocalID  string `json:"local_id,omitempty"`  // temp identity, e.g. "temp-1700000000000"
	ServerID string `json:"server_id,omitempty"` // server identity, e.g. "med_551"
	Name     string `json:"name" validate:"required,max=128"`
	Dose     string `json:"dose" validate:"required,max=64"`
	Schedule string `json:"schedule" validate:"max=128"`
	Notes    string `json:"notes" validate:"max=1024"`
}

// Key returns the current identity of the record: ServerID when confirmed,
// LocalID otherwise.
func (m *Medication) Key() string {
	if m.ServerID != "" {
		return m.ServerID
	}
	return m.LocalID
}

// Confirmed reports whether the record has been acknowledged by the server.
func (m *Medication) Confirmed() bool {
	return m.ServerID != ""
}
