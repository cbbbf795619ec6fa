package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.NoError(t, CompareHash(hash, "correct-horse"))
	assert.Error(t, CompareHash(hash, "wrong-horse"))
}

func TestGetHash_DistinctSalts(t *testing.T) {
	a, err := GetHash("samesame")
	require.NoError(t, err)
	b, err := GetHash("samesame")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
