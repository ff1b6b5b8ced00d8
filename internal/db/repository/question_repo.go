package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// ErrNotFound reports that the addressed row does not exist.
var ErrNotFound = errors.New("record not found")

type questionStore interface {
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, pattern string) ([]sqlcgen.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
}

// QuestionRepository wraps sqlc queries for question access.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]sqlcgen.Question, error) {
	return r.store.ListQuestions(ctx)
}

// ListByCategory returns the questions filed under category, ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error) {
	return r.store.ListQuestionsByCategory(ctx, category)
}

// Search returns questions whose text contains term, ignoring case.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	return r.store.SearchQuestions(ctx, containsPattern(term))
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	return r.store.CountQuestions(ctx)
}

func (r *QuestionRepository) Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	return r.store.InsertQuestion(ctx, params)
}

// Delete removes the question, returning ErrNotFound when nothing was deleted.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) error {
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that treats term literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
