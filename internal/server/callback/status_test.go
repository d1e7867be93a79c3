package callback

import (
	"testing"

	"github.com/dmitrijs2005/dochost/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateOf(t *testing.T) {
	tests := []struct {
		status int
		want   State
	}{
		{0, NoOp},
		{1, Editing},
		{2, ReadyToSave},
		{3, Error},
		{4, NoOp},
		{6, ReadyToSave},
		{7, Error},
	}
	for _, tt := range tests {
		got, err := StateOf(tt.status)
		require.NoError(t, err, tt.status)
		assert.Equal(t, tt.want, got, tt.status)
	}

	for _, status := range []int{-1, 5, 8, 42} {
		_, err := StateOf(status)
		assert.ErrorIs(t, err, common.ErrUnknownStatus, status)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "ready-to-save", ReadyToSave.String())
	assert.Equal(t, "editing", Editing.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "no-op", NoOp.String())
	assert.Equal(t, "State(9)", State(9).String())
}
