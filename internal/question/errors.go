package question

import "errors"

var (
	// ErrPageNotFound is returned when a listing page has no questions.
	ErrPageNotFound = errors.New("page not found")
	// ErrQuestionNotFound is returned when deleting an id that does not exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrMissingFields is returned when a create request lacks a required field.
	ErrMissingFields = errors.New("question, answer, difficulty and category are required")
	// ErrInvalidField is returned when a field is present but out of range.
	ErrInvalidField = errors.New("field value out of range")
	// ErrInvalidCategory is returned when the quiz category id is not an integer.
	ErrInvalidCategory = errors.New("quiz category id must be an integer")
	// ErrNoCandidates is returned when a quiz category holds no questions at all.
	ErrNoCandidates = errors.New("quiz category has no questions")
)
