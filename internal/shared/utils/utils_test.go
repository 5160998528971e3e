package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRoundTrip(t *testing.T) {
	type payload struct {
		OrderID uuid.UUID `json:"order_id"`
	}
	in := payload{OrderID: uuid.New()}

	task, err := MarshalTask("order:auto_process", in)
	require.NoError(t, err)
	assert.Equal(t, "order:auto_process", task.Type())

	var out payload
	require.NoError(t, UnmarshalTask(task, &out))
	assert.Equal(t, in, out)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCode("  save10 "))
}
