package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedication_Key(t *testing.T) {
	unconfirmed := Medication{LocalID: "temp-1700000000000"}
	assert.Equal(t, "temp-1700000000000", unconfirmed.Key())
	assert.False(t, unconfirmed.Confirmed())

	confirmed := Medication{LocalID: "temp-1700000000000", ServerID: "med_551"}
	assert.Equal(t, "med_551", confirmed.Key())
	assert.True(t, confirmed.Confirmed())
}

func TestQueuedAction_Roundtrip(t *testing.T) {
	med := Medication{LocalID: "temp-1", Name: "Aspirin", Dose: "100mg", Schedule: "morning"}

	action, err := NewQueuedAction(ActionUpdate, &med)
	require.NoError(t, err)
	assert.Equal(t, "temp-1", action.LocalID)
	assert.Equal(t, ActionUpdate, action.Kind)
	assert.False(t, action.EnqueuedAt.IsZero())

	got, err := action.Medication()
	require.NoError(t, err)
	assert.Equal(t, med, *got)
}

func TestQueuedAction_CorruptPayload(t *testing.T) {
	action := &QueuedAction{Kind: ActionAdd, Payload: []byte("not json")}
	_, err := action.Medication()
	assert.Error(t, err)
}
