package question

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
)

// Picker returns a uniformly distributed index in [0, n).
type Picker func(n int) int

// ParseCategoryID validates the raw quiz category id. Both 1 and "1" are accepted;
// null, missing and non-integer values are ErrInvalidCategory.
func ParseCategoryID(raw json.RawMessage) (int, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, ErrInvalidCategory
	}
	var id Int
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, ErrInvalidCategory
	}
	return int(id), nil
}

// SelectQuizQuestion picks one candidate whose id is not in previous.
// An empty candidate set is ErrNoCandidates; a fully seen set returns (nil, nil),
// which marks the end of the quiz.
func SelectQuizQuestion(candidates []Question, previous []int, pick Picker) (*Question, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if pick == nil {
		pick = rand.IntN
	}

	seen := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	unseen := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := seen[q.ID]; !ok {
			unseen = append(unseen, q)
		}
	}
	if len(unseen) == 0 {
		return nil, nil
	}

	chosen := unseen[pick(len(unseen))]
	return &chosen, nil
}
