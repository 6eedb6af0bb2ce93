package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vecNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestKeywordEmbedder_Normalised(t *testing.T) {
	e := NewKeywordEmbedder(0)
	assert.Equal(t, 512, e.Dimensions)

	vec, err := e.GenerateEmbedding(context.Background(), "Python, PostgreSQL, Docker")
	require.NoError(t, err)
	assert.Len(t, vec, 512)
	assert.InDelta(t, 1.0, vecNorm(vec), 1e-6)
}

func TestKeywordEmbedder_CaseAndPunctuation(t *testing.T) {
	e := NewKeywordEmbedder(256)
	a, err := e.GenerateEmbedding(context.Background(), "Python")
	require.NoError(t, err)
	b, err := e.GenerateEmbedding(context.Background(), "python.")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestKeywordEmbedder_Errors(t *testing.T) {
	e := NewKeywordEmbedder(64)
	_, err := e.GenerateEmbedding(context.Background(), "   ")
	assert.Error(t, err)

	vec, err := e.GenerateEmbedding(context.Background(), "development experience")
	require.NoError(t, err)
	assert.Zero(t, vecNorm(vec))
}

func TestKeywordTokens(t *testing.T) {
	got := keywordTokens("Senior C++ / C# developer with Node.js and the AWS cloud.")
	for _, want := range []string{"senior", "c++", "c#", "node.js", "aws", "cloud"} {
		assert.True(t, got[want], "missing %q", want)
	}
	for _, stop := range []string{"developer", "with", "and", "the"} {
		assert.False(t, got[stop], "stop word %q kept", stop)
	}
}
