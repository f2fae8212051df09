package meds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/9046balaji/Heart-sub003/internal/models"
)

func TestView_AddGetRemove(t *testing.T) {
	v := NewView()
	assert.Zero(t, v.Len())

	v.add(models.Medication{LocalID: "temp-1", Name: "Aspirin", Dose: "100mg"})
	v.add(models.Medication{ServerID: "med_551", Name: "Metformin", Dose: "500mg"})
	assert.Equal(t, 2, v.Len())

	got, ok := v.Get("temp-1")
	require.True(t, ok)
	assert.Equal(t, "Aspirin", got.Name)

	got, ok = v.Get("med_551")
	require.True(t, ok)
	assert.Equal(t, "Metformin", got.Name)

	_, ok = v.Get("med_999")
	assert.False(t, ok)

	assert.True(t, v.remove("temp-1"))
	assert.False(t, v.remove("temp-1"))
	assert.Equal(t, 1, v.Len())
}

func TestView_ConfirmKeepsPosition(t *testing.T) {
	v := NewView()
	v.add(models.Medication{ServerID: "med_100", Name: "First", Dose: "1"})
	v.add(models.Medication{LocalID: "temp-1", Name: "Middle", Dose: "2"})
	v.add(models.Medication{ServerID: "med_300", Name: "Last", Dose: "3"})

	require.True(t, v.confirm("temp-1", models.Medication{ServerID: "med_200", Name: "Middle", Dose: "2"}))

	list := v.List()
	require.Len(t, list, 3)
	assert.Equal(t, "med_100", list[0].ServerID)
	assert.Equal(t, "med_200", list[1].ServerID)
	assert.Empty(t, list[1].LocalID)
	assert.Equal(t, "med_300", list[2].ServerID)
}

func TestView_SnapshotRestore(t *testing.T) {
	v := NewView()
	v.add(models.Medication{ServerID: "med_551", Name: "Aspirin", Dose: "100mg", Notes: "with food"})

	snap := v.snapshot()

	v.add(models.Medication{LocalID: "temp-1", Name: "Extra", Dose: "1mg"})
	v.update("med_551", models.Medication{ServerID: "med_551", Name: "Changed", Dose: "200mg"})

	v.restore(snap)

	// Restoration is exact, not merely equivalent
	list := v.List()
	require.Len(t, list, 1)
	assert.Equal(t, models.Medication{ServerID: "med_551", Name: "Aspirin", Dose: "100mg", Notes: "with food"}, list[0])
}

func TestView_ListIsACopy(t *testing.T) {
	v := NewView()
	v.add(models.Medication{ServerID: "med_551", Name: "Aspirin", Dose: "100mg"})

	list := v.List()
	list[0].Name = "Tampered"

	got, _ := v.Get("med_551")
	assert.Equal(t, "Aspirin", got.Name)
}
