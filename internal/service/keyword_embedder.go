package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// keywordStopWords are dropped before hashing. Generic job-ad vocabulary is
// included so that only technology terms drive similarity.
var keywordStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true, "for": true, "with": true,
	"to": true, "of": true, "in": true, "on": true, "at": true, "or": true,
	"is": true, "be": true, "we": true, "by": true, "as": true, "it": true,
	"you": true, "are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "using": true, "use": true,
	"development": true, "developer": true, "developers": true, "engineer": true,
	"engineering": true, "experience": true, "years": true, "skills": true,
}

// KeywordEmbedder is an offline embedder: a hashed bag of technology keywords,
// L2-normalised. Texts that share terms land close together; it needs no
// network access, which makes it the default for local runs and tests.
type KeywordEmbedder struct {
	Dimensions int
}

func NewKeywordEmbedder(dimensions int) *KeywordEmbedder {
	if dimensions <= 0 {
		dimensions = 512
	}
	return &KeywordEmbedder{Dimensions: dimensions}
}

func (e *KeywordEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	vec := make([]float32, e.Dimensions)
	for tok := range keywordTokens(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[h.Sum32()%uint32(e.Dimensions)] += 1
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

// keywordTokens lowercases text into a keyword set. + # . count as word
// characters so "c++", "c#" and "node.js" survive.
func keywordTokens(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" && !keywordStopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}
