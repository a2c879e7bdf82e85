package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateApplicationStatusRequest_Validation(t *testing.T) {
	for _, status := range []string{"applied", "reviewing", "rejected", "accepted"} {
		req := UpdateApplicationStatusRequest{Status: status}
		assert.NoError(t, validate.Struct(req), status)
	}

	assert.Error(t, validate.Struct(UpdateApplicationStatusRequest{}))
	assert.Error(t, validate.Struct(UpdateApplicationStatusRequest{Status: "withdrawn"}))
	assert.Error(t, validate.Struct(UpdateApplicationStatusRequest{Status: "Applied"}))
}
