package postgres

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestDecorateError(t *testing.T) {
	assert.NoError(t, DecorateError(nil, "insert plan"))

	pqErr := &pq.Error{Code: "23505", Message: "duplicate key"}
	err := DecorateError(pqErr, "insert plan")
	assert.ErrorIs(t, err, pqErr)
	assert.Contains(t, err.Error(), "code: 23505")

	plain := errors.New("connection reset")
	err = DecorateError(plain, "insert plan")
	assert.ErrorIs(t, err, plain)
	assert.Equal(t, "failed to insert plan: connection reset", err.Error())
}
