package meds

import (
	"sync"

	"github.com/9046balaji/Heart-sub003/internal/models"
)

// View is the local, immediately-updated medication list the UI renders.
// Records are stored by value so snapshots restore the pre-mutation
// state exactly.
type View struct {
	mu      sync.RWMutex
	records []models.Medication
}

// NewView creates an empty view
func NewView() *View {
	return &View{}
}

// List returns a copy of the current records in display order
func (v *View) List() []models.Medication {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]models.Medication, len(v.records))
	copy(out, v.records)
	return out
}

// Get returns the record with the given identity (LocalID or ServerID)
func (v *View) Get(key string) (models.Medication, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, rec := range v.records {
		if rec.Key() == key {
			return rec, true
		}
	}
	return models.Medication{}, false
}

// Len returns the number of records
func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.records)
}

// add appends a record
func (v *View) add(med models.Medication) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = append(v.records, med)
}

// update replaces the record identified by key in place
func (v *View) update(key string, med models.Medication) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, rec := range v.records {
		if rec.Key() == key {
			v.records[i] = med
			return true
		}
	}
	return false
}

// remove deletes the record identified by key, preserving order
func (v *View) remove(key string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, rec := range v.records {
		if rec.Key() == key {
			v.records = append(v.records[:i], v.records[i+1:]...)
			return true
		}
	}
	return false
}

// confirm swaps the record identified by key for its server-confirmed
// form in a single replacement. The record keeps its position; an
// observer sees the identity change atomically, never a remove
// followed by an add.
func (v *View) confirm(key string, confirmed models.Medication) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, rec := range v.records {
		if rec.Key() == key {
			v.records[i] = confirmed
			return true
		}
	}
	return false
}

// snapshot captures the full view state for rollback
func (v *View) snapshot() []models.Medication {
	v.mu.RLock()
	defer v.mu.RUnlock()

	snap := make([]models.Medication, len(v.records))
	copy(snap, v.records)
	return snap
}

// restore replaces the view with a previously captured snapshot
func (v *View) restore(snap []models.Medication) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.records = make([]models.Medication, len(snap))
	copy(v.records, snap)
}

// reset replaces the view with authoritative server state
func (v *View) reset(records []models.Medication) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = records
}
