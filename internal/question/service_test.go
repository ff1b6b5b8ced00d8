package question

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesUsesCache(t *testing.T) {
	categories := seedCategories()
	cache := &memoryCache{}
	svc := newTestService(seedQuestions(), categories, cache, nil)

	first, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Categories{1: "Science", 2: "Art", 3: "Geography"}, first)

	second, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, categories.Calls(), "second read should be served from cache")
	assert.Equal(t, 1, cache.SetCount())
}

func TestCategoriesFallsBackWhenCacheFails(t *testing.T) {
	categories := seedCategories()
	cache := &memoryCache{getErr: errors.New("redis unavailable")}
	svc := newTestService(seedQuestions(), categories, cache, nil)

	got, err := svc.Categories(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, categories.Calls())
}

func TestCategoriesWithoutCache(t *testing.T) {
	categories := seedCategories()
	svc := newTestService(seedQuestions(), categories, nil, nil)

	_, err := svc.Categories(context.Background())
	require.NoError(t, err)
	_, err = svc.Categories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, categories.Calls())
}

func TestListQuestionsPaginates(t *testing.T) {
	svc := newTestService(manyQuestions(23), seedCategories(), nil, nil)

	page, err := svc.ListQuestions(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, []int{21, 22, 23}, ids(page.Questions))
	assert.Equal(t, int64(23), page.Total)
	assert.Len(t, page.Categories, 3)
}

func TestListQuestionsBeyondLastPage(t *testing.T) {
	svc := newTestService(seedQuestions(), seedCategories(), nil, nil)

	_, err := svc.ListQuestions(context.Background(), 1000)

	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestListQuestionsStoreFailure(t *testing.T) {
	questions := seedQuestions()
	questions.err = errStoreDown
	svc := newTestService(questions, seedCategories(), nil, nil)

	_, err := svc.ListQuestions(context.Background(), 1)

	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrPageNotFound)
}

func TestListByCategoryReportsPrePaginationTotal(t *testing.T) {
	svc := newTestService(manyQuestions(40), seedCategories(), nil, nil)

	page, err := svc.ListByCategory(context.Background(), 2, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(14), page.Total)
	assert.Len(t, page.Questions, 4)
	for _, q := range page.Questions {
		assert.Equal(t, 2, q.Category)
	}
}

func TestListByCategoryUnknownIsEmpty(t *testing.T) {
	svc := newTestService(seedQuestions(), seedCategories(), nil, nil)

	for _, category := range []int{1000, 1 << 40} {
		page, err := svc.ListByCategory(context.Background(), category, 1)
		require.NoError(t, err)
		assert.Empty(t, page.Questions)
		assert.NotNil(t, page.Questions)
		assert.Zero(t, page.Total)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	svc := newTestService(seedQuestions(), seedCategories(), nil, nil)

	found, err := svc.Search(context.Background(), "what")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(found), 1)
	assert.Equal(t, []int{1, 3, 4, 5}, ids(found))

	none, err := svc.Search(context.Background(), "abcdefg")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestSearchIgnoresAnswers(t *testing.T) {
	svc := newTestService(seedQuestions(), seedCategories(), nil, nil)

	found, err := svc.Search(context.Background(), "answer-1")

	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestCreateThenDelete(t *testing.T) {
	questions := seedQuestions()
	svc := newTestService(questions, seedCategories(), nil, nil)

	created, err := svc.Create(context.Background(), NewQuestion{
		Question:   "What is the capital of South Korea?",
		Answer:     "Seoul",
		Difficulty: 3,
		Category:   3,
	})
	require.NoError(t, err)
	assert.True(t, questions.has(created.ID))
	assert.Equal(t, "Seoul", created.Answer)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.False(t, questions.has(created.ID))

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrQuestionNotFound)
}

func TestCreateRejectsOutOfRange(t *testing.T) {
	questions := seedQuestions()
	svc := newTestService(questions, seedCategories(), nil, nil)

	_, err := svc.Create(context.Background(), NewQuestion{Question: "q", Answer: "a", Difficulty: 1 << 40, Category: 1})

	assert.ErrorIs(t, err, ErrInvalidField)
	assert.Equal(t, 5, questions.len())
}

func TestDeleteMissing(t *testing.T) {
	svc := newTestService(seedQuestions(), seedCategories(), nil, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1000), ErrQuestionNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1<<40), ErrQuestionNotFound)
}

func TestDeleteStoreFailure(t *testing.T) {
	questions := seedQuestions()
	questions.err = errStoreDown
	svc := newTestService(questions, seedCategories(), nil, nil)

	err := svc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrQuestionNotFound)
}

func TestNextQuizQuestionWithinCategory(t *testing.T) {
	svc := newTestService(seedQuestions(), seedCategories(), nil, nil)
	ctx := context.Background()

	first, err := svc.NextQuizQuestion(ctx, 1, nil)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, first.Category)

	second, err := svc.NextQuizQuestion(ctx, 1, []int{first.ID})
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, second.Category)
}

func TestNextQuizQuestionAllCategories(t *testing.T) {
	svc := newTestService(seedQuestions(), seedCategories(), nil, func(n int) int { return n - 1 })

	got, err := svc.NextQuizQuestion(context.Background(), AllCategories, []int{5})

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.ID)
}

func TestNextQuizQuestionExhausted(t *testing.T) {
	svc := newTestService(seedQuestions(), seedCategories(), nil, nil)

	got, err := svc.NextQuizQuestion(context.Background(), 2, []int{4})

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestNextQuizQuestionUnknownCategory(t *testing.T) {
	svc := newTestService(seedQuestions(), seedCategories(), nil, nil)

	for _, category := range []int{1000, -1, 1 << 40} {
		_, err := svc.NextQuizQuestion(context.Background(), category, nil)
		assert.ErrorIs(t, err, ErrNoCandidates, "category=%d", category)
	}
}

func TestNextQuizQuestionStoreFailure(t *testing.T) {
	questions := seedQuestions()
	questions.err = errStoreDown
	svc := newTestService(questions, seedCategories(), nil, nil)

	_, err := svc.NextQuizQuestion(context.Background(), 1, nil)

	assert.ErrorIs(t, err, errStoreDown)
}
