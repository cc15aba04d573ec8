package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashAndVerify(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()
	verifier := NewBcryptVerifier()

	t.Run("round trip succeeds", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.NoError(t, verifier.Compare(hash, "correct horse battery staple"))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)

		assert.Error(t, verifier.Compare(hash, "incorrect horse battery staple"))
	})

	t.Run("corrupted hash fails", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)

		// Flip one character in the digest portion of the hash
		corrupted := []byte(hash)
		last := len(corrupted) - 1
		if corrupted[last] == 'a' {
			corrupted[last] = 'b'
		} else {
			corrupted[last] = 'a'
		}

		assert.Error(t, verifier.Compare(string(corrupted), "correct horse battery staple"))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()
		first, err := hasher.Hash("same password")
		require.NoError(t, err)
		second, err := hasher.Hash("same password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
