package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAddItemRequest_Validate(t *testing.T) {
	assert.Error(t, AddItemRequest{Quantity: 1}.Validate())
	assert.Error(t, AddItemRequest{ProductID: uuid.New(), Quantity: 0}.Validate())
	assert.Error(t, AddItemRequest{ProductID: uuid.New(), Quantity: 100}.Validate())
	assert.NoError(t, AddItemRequest{ProductID: uuid.New(), Quantity: 2}.Validate())
}
