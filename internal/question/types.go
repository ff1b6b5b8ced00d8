package question

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// QuestionsPerPage is the fixed page size for paginated listings.
const QuestionsPerPage = 10

// AllCategories is the quiz category id meaning "no category filter".
const AllCategories = 0

// Question is the formatted representation returned to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Categories maps category id to its type label. JSON renders the ids as object keys.
type Categories map[int]string

// Page is one slice of a listing plus the pre-pagination total.
type Page struct {
	Questions  []Question
	Total      int64
	Categories Categories
}

// NewQuestion carries the validated fields of a create request.
type NewQuestion struct {
	Question   string
	Answer     string
	Difficulty int
	Category   int
}

// Int accepts a JSON number without a fractional part (3, 3.0, 3e0) or a
// numeric string ("3") and holds the integer value.
type Int int

func (n *Int) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not an integer", s)
		}
		*n = Int(v)
		return nil
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*n = Int(v)
		return nil
	}
	var f float64
	if raw == "null" {
		return fmt.Errorf("null is not an integer")
	}
	if err := json.Unmarshal(b, &f); err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return fmt.Errorf("%s is not an integer", raw)
	}
	*n = Int(f)
	return nil
}

// PostQuestionsRequest is the body of POST /questions. A non-empty SearchTerm turns
// the call into a search; otherwise the remaining fields describe a new question.
type PostQuestionsRequest struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Difficulty *Int    `json:"difficulty"`
	Category   *Int    `json:"category"`
	SearchTerm *string `json:"searchTerm"`
}

// IsSearch reports whether the body asks for a search.
func (r PostQuestionsRequest) IsSearch() bool {
	return r.SearchTerm != nil && *r.SearchTerm != ""
}

// Validate returns ErrMissingFields unless all four question fields are present.
func (r PostQuestionsRequest) Validate() (NewQuestion, error) {
	if r.Question == nil || r.Answer == nil || r.Difficulty == nil || r.Category == nil {
		return NewQuestion{}, ErrMissingFields
	}
	return NewQuestion{
		Question:   *r.Question,
		Answer:     *r.Answer,
		Difficulty: int(*r.Difficulty),
		Category:   int(*r.Category),
	}, nil
}

// QuizRequest is the body of POST /quizzes.
type QuizRequest struct {
	PreviousQuestions []Int         `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// QuizCategory keeps the raw id so it can be validated separately from decoding.
type QuizCategory struct {
	ID   json.RawMessage `json:"id"`
	Type string          `json:"type"`
}

// PreviousIDs returns the already-asked question ids.
func (r QuizRequest) PreviousIDs() []int {
	ids := make([]int, 0, len(r.PreviousQuestions))
	for _, id := range r.PreviousQuestions {
		ids = append(ids, int(id))
	}
	return ids
}

func toDomain(row sqlcgen.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   int(row.Category),
		Difficulty: int(row.Difficulty),
	}
}

func toDomainList(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out
}

// toInt32 narrows an id or attribute to the column width, reporting overflow.
func toInt32(v int) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}
