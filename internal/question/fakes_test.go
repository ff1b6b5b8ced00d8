package question

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

var errStoreDown = errors.New("store down")

// memoryQuestions is an in-memory QuestionStore.
type memoryQuestions struct {
	mu     sync.Mutex
	rows   map[int32]sqlcgen.Question
	nextID int32
	err    error
}

func newMemoryQuestions(rows ...sqlcgen.Question) *memoryQuestions {
	m := &memoryQuestions{rows: map[int32]sqlcgen.Question{}}
	for _, row := range rows {
		m.rows[row.ID] = row
		if row.ID > m.nextID {
			m.nextID = row.ID
		}
	}
	return m
}

func (m *memoryQuestions) sorted(keep func(sqlcgen.Question) bool) []sqlcgen.Question {
	out := make([]sqlcgen.Question, 0, len(m.rows))
	for _, row := range m.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryQuestions) List(_ context.Context) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(sqlcgen.Question) bool { return true }), nil
}

func (m *memoryQuestions) ListByCategory(_ context.Context, category int32) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(q sqlcgen.Question) bool { return q.Category == category }), nil
}

func (m *memoryQuestions) Search(_ context.Context, term string) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	needle := strings.ToLower(term)
	return m.sorted(func(q sqlcgen.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (m *memoryQuestions) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.rows)), nil
}

func (m *memoryQuestions) Insert(_ context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return sqlcgen.Question{}, m.err
	}
	m.nextID++
	row := sqlcgen.Question{
		ID:         m.nextID,
		Question:   params.Question,
		Answer:     params.Answer,
		Difficulty: params.Difficulty,
		Category:   params.Category,
	}
	m.rows[row.ID] = row
	return row, nil
}

func (m *memoryQuestions) Delete(_ context.Context, id int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryQuestions) has(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[int32(id)]
	return ok
}

func (m *memoryQuestions) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// memoryCategories is an in-memory CategoryStore that counts reads.
type memoryCategories struct {
	mu    sync.Mutex
	rows  []sqlcgen.Category
	calls int
	err   error
}

func (m *memoryCategories) List(_ context.Context) ([]sqlcgen.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func (m *memoryCategories) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type memoryCache struct {
	mu     sync.Mutex
	stored Categories
	sets   int
	getErr error
}

func (c *memoryCache) Get(_ context.Context) (Categories, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.stored, nil
}

func (c *memoryCache) Set(_ context.Context, categories Categories) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = categories
	c.sets++
	return nil
}

func (c *memoryCache) SetCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

func seedCategories() *memoryCategories {
	return &memoryCategories{rows: []sqlcgen.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
	}}
}

func seedQuestions() *memoryQuestions {
	return newMemoryQuestions(
		sqlQuestion(1, "What is the heaviest organ in the human body?", 1),
		sqlQuestion(2, "Who discovered penicillin?", 1),
		sqlQuestion(3, "Hematology is a branch of medicine involving the study of what?", 1),
		sqlQuestion(4, "La Giaconda is better known as what?", 2),
		sqlQuestion(5, "What is the largest lake in Africa?", 3),
	)
}

// manyQuestions builds n questions spread over categories 1..3.
func manyQuestions(n int) *memoryQuestions {
	rows := make([]sqlcgen.Question, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, sqlQuestion(int32(i), fmt.Sprintf("Question %d?", i), int32(i%3+1)))
	}
	return newMemoryQuestions(rows...)
}

func sqlQuestion(id int32, text string, category int32) sqlcgen.Question {
	return sqlcgen.Question{
		ID:         id,
		Question:   text,
		Answer:     fmt.Sprintf("answer-%d", id),
		Difficulty: id%5 + 1,
		Category:   category,
	}
}

func newTestService(questions *memoryQuestions, categories *memoryCategories, cache CategoryCache, pick Picker) *Service {
	return NewService(questions, categories, cache, ServiceOptions{Picker: pick, Logger: zerolog.Nop()})
}

func formattedQuestions(n int) []Question {
	out := make([]Question, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Question{ID: i, Question: fmt.Sprintf("Q%d", i)})
	}
	return out
}
