package question

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

var (
	errMalformedBody = errors.New("malformed JSON body")
	errInvalidBody   = errors.New("request body does not match schema")
)

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a trivia HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// Register mounts the endpoints on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.HandleListCategories)
	mux.HandleFunc("GET /categories/{category_id}/questions", h.HandleListByCategory)
	mux.HandleFunc("GET /questions", h.HandleListQuestions)
	mux.HandleFunc("POST /questions", h.HandlePostQuestions)
	mux.HandleFunc("DELETE /questions/{id}", h.HandleDeleteQuestion)
	mux.HandleFunc("POST /quizzes", h.HandleQuiz)
}

type categoriesResponse struct {
	Success    bool       `json:"success"`
	Categories Categories `json:"categories"`
}

type questionListResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int64      `json:"total_questions"`
	Categories      Categories `json:"categories"`
	CurrentCategory *int       `json:"current_category"`
}

type filteredQuestionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int64      `json:"total_questions"`
	CurrentCategory *int       `json:"current_category"`
}

type createdResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
}

type deletedResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

type quizResponse struct {
	Success  bool      `json:"success"`
	Question *Question `json:"question"`
}

// HandleListCategories serves GET /categories.
func (h *HTTPHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.loggerFor(r).Error().Err(err).Msg("list categories failed")
		httperrors.RespondInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

// HandleListQuestions serves GET /questions?page=N.
func (h *HTTPHandler) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	page := ParsePage(r.URL.Query().Get("page"))

	result, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		h.loggerFor(r).Error().Err(err).Int("page", page).Msg("list questions failed")
		httperrors.RespondInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, questionListResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
		Categories:     result.Categories,
	})
}

// HandleListByCategory serves GET /categories/{category_id}/questions?page=N.
func (h *HTTPHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := strconv.Atoi(r.PathValue("category_id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}
	page := ParsePage(r.URL.Query().Get("page"))

	result, err := h.svc.ListByCategory(r.Context(), category, page)
	if err != nil {
		h.loggerFor(r).Error().Err(err).Int("category", category).Msg("list questions by category failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	writeJSON(w, http.StatusOK, filteredQuestionsResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	})
}

// HandlePostQuestions serves POST /questions: a search when searchTerm is set, a create otherwise.
func (h *HTTPHandler) HandlePostQuestions(w http.ResponseWriter, r *http.Request) {
	var req PostQuestionsRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.IsSearch() {
		questions, err := h.svc.Search(r.Context(), *req.SearchTerm)
		if err != nil {
			h.loggerFor(r).Error().Err(err).Msg("search questions failed")
			httperrors.RespondUnprocessable(w)
			return
		}
		writeJSON(w, http.StatusOK, filteredQuestionsResponse{
			Success:        true,
			Questions:      questions,
			TotalQuestions: int64(len(questions)),
		})
		return
	}

	input, err := req.Validate()
	if err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.loggerFor(r).Error().Err(err).Msg("create question failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.loggerFor(r).Info().Int("question_id", created.ID).Msg("question created")
	writeJSON(w, http.StatusOK, createdResponse{Success: true, Created: created.ID})
}

// HandleDeleteQuestion serves DELETE /questions/{id}.
func (h *HTTPHandler) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if !errors.Is(err, ErrQuestionNotFound) {
			h.loggerFor(r).Error().Err(err).Int("question_id", id).Msg("delete question failed")
		}
		httperrors.RespondUnprocessable(w)
		return
	}

	h.loggerFor(r).Info().Int("question_id", id).Msg("question deleted")
	writeJSON(w, http.StatusOK, deletedResponse{Success: true, Deleted: id})
}

// HandleQuiz serves POST /quizzes.
func (h *HTTPHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.QuizCategory == nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	categoryID, err := ParseCategoryID(req.QuizCategory.ID)
	if err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	next, err := h.svc.NextQuizQuestion(r.Context(), categoryID, req.PreviousIDs())
	if err != nil {
		if errors.Is(err, ErrNoCandidates) {
			httperrors.RespondBadRequest(w)
			return
		}
		h.loggerFor(r).Error().Err(err).Int("category", categoryID).Msg("quiz turn failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	writeJSON(w, http.StatusOK, quizResponse{Success: true, Question: next})
}

// decode reads the JSON body into dst. Syntactically broken bodies are 400;
// well-formed bodies of the wrong shape are 422.
func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(r, dst); err != nil {
		if errors.Is(err, errMalformedBody) {
			httperrors.RespondBadRequest(w)
		} else {
			httperrors.RespondUnprocessable(w)
		}
		h.loggerFor(r).Debug().Err(err).Msg("rejected request body")
		return false
	}
	return true
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.As(err, &syntaxErr) {
			return errors.Join(errMalformedBody, err)
		}
		return errors.Join(errInvalidBody, err)
	}
	return nil
}

// loggerFor prefers the request-scoped logger set by the server middleware.
func (h *HTTPHandler) loggerFor(r *http.Request) *zerolog.Logger {
	if logger := logging.FromContext(r.Context()); logger.GetLevel() != zerolog.Disabled {
		return &logger
	}
	return &h.logger
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		httperrors.RespondInternalError(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
