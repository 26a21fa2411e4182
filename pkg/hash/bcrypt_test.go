package hash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviegenie/pkg/hash"
)

func TestBcryptHasher(t *testing.T) {
	h := hash.NewBcryptHasher()

	t.Run("hash and compare round trip", func(t *testing.T) {
		hashed, err := h.Hash("password1")
		require.NoError(t, err)
		require.NotEqual(t, "password1", hashed)

		assert.NoError(t, h.Compare(hashed, "password1"))
	})

	t.Run("wrong password fails comparison", func(t *testing.T) {
		hashed, err := h.Hash("password1")
		require.NoError(t, err)

		assert.Error(t, h.Compare(hashed, "password2"))
	})

	t.Run("garbage hash fails comparison", func(t *testing.T) {
		assert.Error(t, h.Compare("not-a-bcrypt-hash", "password1"))
	})
}
