package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/tu-usuario/inventario-tracker/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "inventario-tracker-test"
)

func TestGenerateYParse_RoundTrip(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, 42, "ana@example.com", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, email, err := pkgjwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "ana@example.com", email)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, 42, "ana@example.com", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret", token)
	assert.Error(t, err, "un token firmado con otro secret debe rechazarse")
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, 42, "ana@example.com", testIssuer, -5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, token)
	assert.Error(t, err, "un token vencido debe rechazarse")
}

func TestParse_TokenBasura(t *testing.T) {
	_, _, err := pkgjwt.Parse(testSecret, "no-es-un-jwt")
	assert.Error(t, err)
}
