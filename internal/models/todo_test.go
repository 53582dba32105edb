package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"draft", "todo", "doing", "done", "trash"} {
		status, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, Status(raw), status)
	}

	_, err := ParseStatus("archived")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}
