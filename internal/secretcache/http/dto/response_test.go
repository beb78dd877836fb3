package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSecretToResponse(t *testing.T) {
	response := MapSecretToResponse("app_key_encrypted", "Zm9v")

	body, err := json.Marshal(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"app_key_encrypted","ciphertext":"Zm9v"}`, string(body))
}
