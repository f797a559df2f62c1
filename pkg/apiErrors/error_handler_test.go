package apiErrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		status int
	}{
		{name: "transportadora não habilitada", code: ErrCarrierNotAuthorized, status: http.StatusForbidden},
		{name: "sem cidades ativas", code: ErrNoActiveCities, status: http.StatusUnprocessableEntity},
		{name: "sem nós ativos", code: ErrNoActiveNodes, status: http.StatusUnprocessableEntity},
		{name: "requisição inválida", code: ErrInvalidRequest, status: http.StatusBadRequest},
		{name: "código desconhecido vira 500", code: "XYZ_999", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, "mensagem", nil)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrDatabaseOperation).Code)

	apiErr := FromError(errors.New("falhou"), ErrDatabaseOperation)
	assert.Equal(t, ErrDatabaseOperation, apiErr.Code)
	assert.Equal(t, "falhou", apiErr.Message)
}
