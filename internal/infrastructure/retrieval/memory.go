// Package retrieval provides the document retriever behind the recipe
// provider. The in-memory implementation tokenizes documents at load time
// and ranks them by keyword overlap with the query.
package retrieval

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/nutriplan/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// stopwords are excluded from scoring so fillers don't dominate overlap.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "for": {}, "from": {},
	"in": {}, "is": {}, "it": {}, "of": {}, "on": {}, "or": {},
	"the": {}, "to": {}, "with": {},
}

type indexedDocument struct {
	doc    outbound.Document
	tokens map[string]int
}

// MemoryRetriever is an outbound.DocumentRetriever over an in-process
// document set. The index is built once at construction and read-only after,
// so lookups need no locking.
type MemoryRetriever struct {
	index  []indexedDocument
	logger *zap.Logger
}

// NewMemoryRetriever indexes the given documents for keyword retrieval.
func NewMemoryRetriever(docs []outbound.Document, logger *zap.Logger) *MemoryRetriever {
	index := make([]indexedDocument, 0, len(docs))
	for _, doc := range docs {
		index = append(index, indexedDocument{
			doc:    doc,
			tokens: tokenize(doc.Title + " " + doc.Content),
		})
	}

	logger.Info("document index built", zap.Int("documents", len(index)))

	return &MemoryRetriever{
		index:  index,
		logger: logger.Named("memory-retriever"),
	}
}

// Retrieve returns up to limit documents ranked by keyword overlap with the
// query. Documents with no overlap are never returned.
func (r *MemoryRetriever) Retrieve(ctx context.Context, query string, limit int) ([]outbound.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil, nil
	}

	type scored struct {
		doc   outbound.Document
		score float64
	}

	matches := make([]scored, 0, len(r.index))
	for _, entry := range r.index {
		var score float64
		for token, weight := range queryTokens {
			if count, ok := entry.tokens[token]; ok {
				score += float64(weight * count)
			}
		}
		if score > 0 {
			doc := entry.doc
			doc.Score = score
			matches = append(matches, scored{doc: doc, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]outbound.Document, len(matches))
	for i, m := range matches {
		out[i] = m.doc
	}

	r.logger.Debug("documents retrieved",
		zap.Int("query_tokens", len(queryTokens)),
		zap.Int("matches", len(out)),
	)
	return out, nil
}

func tokenize(text string) map[string]int {
	tokens := map[string]int{}
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, skip := stopwords[token]; skip {
			continue
		}
		tokens[token]++
	}
	return tokens
}
