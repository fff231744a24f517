package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := NewPolicy("Quiet Hours", "Quiet hours are observed from 10 PM to 6 AM daily.", uuid.New())
	require.NoError(t, err)
	return p
}

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		content   string
		createdBy uuid.UUID
		wantErr   bool
	}{
		{"valid", "Quiet Hours", "Quiet hours are observed nightly.", uuid.New(), false},
		{"empty title", " ", "content", uuid.New(), true},
		{"empty content", "Title", "  ", uuid.New(), true},
		{"nil creator", "Title", "content", uuid.Nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPolicy(tt.title, tt.content, tt.createdBy)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, p.IsActive)
		})
	}
}

func TestPolicy_Revise(t *testing.T) {
	p := createTestPolicy(t)

	require.NoError(t, p.Revise("Quiet Hours (Revised)", "Quiet hours now start at 9 PM."))
	assert.Equal(t, "Quiet Hours (Revised)", p.Title)

	assert.Error(t, p.Revise("", "content"))
	assert.Error(t, p.Revise("Title", ""))
}

func TestPolicy_DeactivateReactivate(t *testing.T) {
	p := createTestPolicy(t)

	require.NoError(t, p.Deactivate())
	assert.False(t, p.IsActive)
	assert.Error(t, p.Deactivate())

	require.NoError(t, p.Reactivate())
	assert.True(t, p.IsActive)
	assert.Error(t, p.Reactivate())
}
