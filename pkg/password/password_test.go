package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/certificate-portal/pkg/password"
)

func TestHashVerify_Coinciden(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)

	for _, plain := range []string{"secret123", "contraseña con espacios", "ñandú-¿?", strings.Repeat("a", 72)} {
		hash, err := h.Hash(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, hash, "nunca se guarda el texto plano")
		assert.True(t, h.Verify(plain, hash), "verify(p, hash(p)) debe ser true para %q", plain)
	}
}

func TestVerify_PasswordIncorrecto(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.False(t, h.Verify("secret124", hash))
	assert.False(t, h.Verify("", hash))
	assert.False(t, h.Verify("secret123", "no-es-un-hash"))
}

func TestHash_ConSal(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)
	a, err := h.Hash("mismo-password")
	require.NoError(t, err)
	b, err := h.Hash("mismo-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "dos hashes del mismo input deben diferir por la sal")
	assert.True(t, h.Verify("mismo-password", a))
	assert.True(t, h.Verify("mismo-password", b))
}

func TestHash_DemasiadoLargo(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, password.ErrTooLong)
}

func TestNewHasher_CostoInvalido(t *testing.T) {
	h := password.NewHasher(100)
	hash, err := h.Hash("abc12345")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
