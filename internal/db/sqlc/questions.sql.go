package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const listQuestions = `-- name: ListQuestions :many
SELECT id, question, answer, difficulty, category FROM questions
ORDER BY id
`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, err
	}
	return scanQuestions(rows)
}

const listQuestionsByCategory = `-- name: ListQuestionsByCategory :many
SELECT id, question, answer, difficulty, category FROM questions
WHERE category = $1
ORDER BY id
`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, category int32) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByCategory, category)
	if err != nil {
		return nil, err
	}
	return scanQuestions(rows)
}

const searchQuestions = `-- name: SearchQuestions :many
SELECT id, question, answer, difficulty, category FROM questions
WHERE question ILIKE $1
ORDER BY id
`

// SearchQuestions matches pattern with ILIKE; callers supply the % wildcards.
func (q *Queries) SearchQuestions(ctx context.Context, pattern string) ([]Question, error) {
	rows, err := q.db.Query(ctx, searchQuestions, pattern)
	if err != nil {
		return nil, err
	}
	return scanQuestions(rows)
}

const countQuestions = `-- name: CountQuestions :one
SELECT count(*) FROM questions
`

func (q *Queries) CountQuestions(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countQuestions)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertQuestion = `-- name: InsertQuestion :one
INSERT INTO questions (question, answer, difficulty, category)
VALUES ($1, $2, $3, $4)
RETURNING id, question, answer, difficulty, category
`

type InsertQuestionParams struct {
	Question   string
	Answer     string
	Difficulty int32
	Category   int32
}

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	row := q.db.QueryRow(ctx, insertQuestion,
		arg.Question,
		arg.Answer,
		arg.Difficulty,
		arg.Category,
	)
	var i Question
	err := row.Scan(&i.ID, &i.Question, &i.Answer, &i.Difficulty, &i.Category)
	return i, err
}

const deleteQuestion = `-- name: DeleteQuestion :execrows
DELETE FROM questions
WHERE id = $1
`

func (q *Queries) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	result, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func scanQuestions(rows pgx.Rows) ([]Question, error) {
	defer rows.Close()
	var items []Question
	for rows.Next() {
		var i Question
		if err := rows.Scan(&i.ID, &i.Question, &i.Answer, &i.Difficulty, &i.Category); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
