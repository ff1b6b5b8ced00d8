package question

import "strconv"

// ParsePage reads a 1-based page number, falling back to 1 for anything
// missing, malformed or non-positive.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate returns items[(page-1)*QuestionsPerPage : page*QuestionsPerPage],
// clamped to the input. Pages past the end are empty, never nil.
func Paginate(items []Question, page int) []Question {
	if page < 1 {
		page = 1
	}
	if page-1 >= (len(items)+QuestionsPerPage-1)/QuestionsPerPage {
		return []Question{}
	}
	start := (page - 1) * QuestionsPerPage
	end := min(start+QuestionsPerPage, len(items))
	return items[start:end]
}
