package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"smartfaq/internal/app"
	"smartfaq/internal/repository"
	"smartfaq/internal/transport/http/response"
)

type FAQHandler struct {
	ingestService *app.IngestService
	faqService    *app.FAQService
	historyRepo   *repository.QAHistoryRepository
	documentsDir  string
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

func NewFAQHandler(
	ingestService *app.IngestService,
	faqService *app.FAQService,
	historyRepo *repository.QAHistoryRepository,
	documentsDir string,
) *FAQHandler {
	return &FAQHandler{
		ingestService: ingestService,
		faqService:    faqService,
		historyRepo:   historyRepo,
		documentsDir:  documentsDir,
	}
}

// IngestDocuments re-reads the documents folder and rebuilds the index.
func (h *FAQHandler) IngestDocuments(c *gin.Context) {
	outcome := h.ingestService.Ingest(c.Request.Context(), h.documentsDir)
	response.OK(c, outcome)
}

// Ask answers a question. Malformed input is rejected here; everything past
// this point always produces an answer object.
func (h *FAQHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "question must not be blank")
		return
	}

	result := h.faqService.Ask(c.Request.Context(), req.Question)
	response.OK(c, result)
}

// History lists the most recent answered questions.
func (h *FAQHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := h.historyRepo.ListRecent(limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list history failed")
		return
	}
	response.OK(c, records)
}
