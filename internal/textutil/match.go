package textutil

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Tokenize case-folds text and splits it on anything that is not a letter or
// digit. Single-character tokens are dropped.
func Tokenize(text string) []string {
	parts := nonWord.Split(cases.Fold().String(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if len([]rune(strings.TrimSpace(part))) < 2 {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// termVector maps a token to its weight.
type termVector map[string]float64

func countTerms(text string) termVector {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	v := make(termVector, len(tokens))
	for _, token := range tokens {
		v[token]++
	}
	return v
}

func (v termVector) norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// weighted scales every term present in idf. Unknown terms keep their count.
func (v termVector) weighted(idf map[string]float64) termVector {
	if len(idf) == 0 {
		return v
	}
	out := make(termVector, len(v))
	for token, w := range v {
		if f, ok := idf[token]; ok {
			w *= f
		}
		if w != 0 {
			out[token] = w
		}
	}
	return out
}

func cosine(a, b termVector) float64 {
	na, nb := a.norm(), b.norm()
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for token, w := range a {
		dot += w * b[token]
	}
	return dot / (na * nb)
}

// inverseDocFreq returns smoothed weights log((N+1)/(1+df)) + 1 over docs, so a
// term shared by every document still counts for something.
func inverseDocFreq(docs []termVector) map[string]float64 {
	df := make(map[string]int)
	n := 0
	for _, doc := range docs {
		if len(doc) == 0 {
			continue
		}
		n++
		for token := range doc {
			df[token]++
		}
	}
	if n == 0 {
		return nil
	}
	idf := make(map[string]float64, len(df))
	for token, count := range df {
		idf[token] = math.Log(float64(n+1)/float64(1+count)) + 1
	}
	return idf
}

// Similarity is the plain term-frequency cosine of a and b, in [0, 1].
func Similarity(a, b string) float64 {
	return cosine(countTerms(a), countTerms(b))
}

// Match is a candidate scored by BestMatch.
type Match struct {
	Index int
	Score float64
}

// BestMatch returns the candidate most similar to query. Terms are weighted by
// how rare they are among the candidates, so "Horror Movies" beats "Comedy
// Movies" for "my horror list". ok is false when no candidate reaches
// minScore.
func BestMatch(query string, candidates []string, minScore float64) (Match, bool) {
	q := countTerms(query)
	if len(q) == 0 || len(candidates) == 0 {
		return Match{}, false
	}
	docs := make([]termVector, len(candidates))
	for i, candidate := range candidates {
		docs[i] = countTerms(candidate)
	}
	idf := inverseDocFreq(docs)
	q = q.weighted(idf)

	best := Match{Index: -1}
	for i, doc := range docs {
		if score := cosine(q, doc.weighted(idf)); score > best.Score {
			best = Match{Index: i, Score: score}
		}
	}
	if best.Index < 0 || best.Score < minScore {
		return Match{}, false
	}
	return best, true
}
