package store

import (
	"encoding/json"
	"fmt"

	"github.com/tribridrag/tribridrag"
)

// passageJSON is the column representation of a fused passage.
type passageJSON struct {
	Source    string  `json:"source"`
	Snippet   string  `json:"snippet"`
	Score     float64 `json:"score"`
	Retriever string  `json:"retriever"`
}

// EncodePassages serializes passages for a JSONB column.
func EncodePassages(passages []tribridrag.Passage) ([]byte, error) {
	out := make([]passageJSON, 0, len(passages))
	for _, p := range passages {
		out = append(out, passageJSON{
			Source:    p.Source,
			Snippet:   p.Snippet,
			Score:     p.Score,
			Retriever: string(p.Retriever),
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode passages: %w", err)
	}
	return data, nil
}

// DecodePassages deserializes a JSONB passages column.
func DecodePassages(data []byte) ([]tribridrag.Passage, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw []passageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode passages: %w", err)
	}
	passages := make([]tribridrag.Passage, 0, len(raw))
	for _, p := range raw {
		passages = append(passages, tribridrag.Passage{
			Source:    p.Source,
			Snippet:   p.Snippet,
			Score:     p.Score,
			Retriever: tribridrag.Retriever(p.Retriever),
		})
	}
	return passages, nil
}
