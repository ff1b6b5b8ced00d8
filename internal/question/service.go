package question

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// QuestionStore is the question persistence the service needs (implemented by repository.QuestionRepository).
type QuestionStore interface {
	List(ctx context.Context) ([]sqlcgen.Question, error)
	ListByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error)
	Search(ctx context.Context, term string) ([]sqlcgen.Question, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	Delete(ctx context.Context, id int32) error
}

// CategoryStore lists categories (implemented by repository.CategoryRepository).
type CategoryStore interface {
	List(ctx context.Context) ([]sqlcgen.Category, error)
}

// CategoryCache defines cache behavior (implemented by Redis-backed Cache).
// Get returns (nil, nil) on a miss.
type CategoryCache interface {
	Get(ctx context.Context) (Categories, error)
	Set(ctx context.Context, categories Categories) error
}

var (
	_ QuestionStore = (*repository.QuestionRepository)(nil)
	_ CategoryStore = (*repository.CategoryRepository)(nil)
)

// Service implements listing, search, mutation and quiz turns over the stores.
type Service struct {
	questions  QuestionStore
	categories CategoryStore
	cache      CategoryCache
	pick       Picker
	logger     zerolog.Logger
}

type ServiceOptions struct {
	// Picker overrides the random index source used for quiz turns.
	Picker Picker
	Logger zerolog.Logger
}

// NewService wires the stores. cache may be nil, in which case categories always come from the database.
func NewService(questions QuestionStore, categories CategoryStore, cache CategoryCache, opts ServiceOptions) *Service {
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		pick:       opts.Picker,
		logger:     opts.Logger.With().Str("component", "question_service").Logger(),
	}
}

// Categories returns every category, preferring the cache.
func (s *Service) Categories(ctx context.Context) (Categories, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	categories, err := s.LoadCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// LoadCategories reads categories straight from the database.
func (s *Service) LoadCategories(ctx context.Context) (Categories, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make(Categories, len(rows))
	for _, row := range rows {
		categories[int(row.ID)] = row.Type
	}
	return categories, nil
}

// ListQuestions returns one page of all questions with the overall count and the categories.
// An empty page is ErrPageNotFound.
func (s *Service) ListQuestions(ctx context.Context, page int) (Page, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("list questions: %w", err)
	}

	current := Paginate(toDomainList(rows), page)
	if len(current) == 0 {
		return Page{}, ErrPageNotFound
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("count questions: %w", err)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return Page{}, err
	}

	return Page{Questions: current, Total: total, Categories: categories}, nil
}

// ListByCategory returns one page of the category's questions. Unknown categories
// and out-of-range pages yield an empty page, not an error.
func (s *Service) ListByCategory(ctx context.Context, category, page int) (Page, error) {
	id, ok := toInt32(category)
	if !ok {
		return Page{Questions: []Question{}}, nil
	}
	rows, err := s.questions.ListByCategory(ctx, id)
	if err != nil {
		return Page{}, fmt.Errorf("list questions by category %d: %w", category, err)
	}
	all := toDomainList(rows)
	return Page{Questions: Paginate(all, page), Total: int64(len(all))}, nil
}

// Search returns every question whose text contains term, case-insensitively.
func (s *Service) Search(ctx context.Context, term string) ([]Question, error) {
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return toDomainList(rows), nil
}

// Create persists a new question.
func (s *Service) Create(ctx context.Context, req NewQuestion) (Question, error) {
	difficulty, ok := toInt32(req.Difficulty)
	if !ok {
		return Question{}, ErrInvalidField
	}
	category, ok := toInt32(req.Category)
	if !ok {
		return Question{}, ErrInvalidField
	}

	row, err := s.questions.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: difficulty,
		Category:   category,
	})
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	return toDomain(row), nil
}

// Delete removes a question; a missing id is ErrQuestionNotFound.
func (s *Service) Delete(ctx context.Context, id int) error {
	qid, ok := toInt32(id)
	if !ok {
		return ErrQuestionNotFound
	}
	if err := s.questions.Delete(ctx, qid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

// NextQuizQuestion plays one quiz turn. categoryID AllCategories draws from every question.
// A nil question with a nil error means every candidate has already been asked.
func (s *Service) NextQuizQuestion(ctx context.Context, categoryID int, previous []int) (*Question, error) {
	var (
		rows []sqlcgen.Question
		err  error
	)
	if categoryID == AllCategories {
		rows, err = s.questions.List(ctx)
	} else if id, ok := toInt32(categoryID); ok {
		rows, err = s.questions.ListByCategory(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz candidates: %w", err)
	}

	return SelectQuizQuestion(toDomainList(rows), previous, s.pick)
}
