package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feebridge/feebridge/internal/api/dto"
	ierr "github.com/feebridge/feebridge/internal/errors"
	"github.com/feebridge/feebridge/internal/logger"
	"github.com/feebridge/feebridge/internal/service"
)

// SearchHandler handles student search queries
type SearchHandler struct {
	searchService service.SearchService
	logger        *logger.Logger
}

func NewSearchHandler(searchService service.SearchService, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// @Summary Search students
// @Description Case-insensitive substring search on name and admission number, exact match on school
// @Tags Search
// @Produce json
// @Param name query string true "Student name fragment (min 3 chars)"
// @Param admission query string true "Admission number fragment (min 3 chars)"
// @Param school query string false "School branch (default Janakpuri)"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.searchService.Search(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("search failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Health check
// @Description Liveness plus the loaded dataset row count
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SearchHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok"}
	if rows, loaded := h.searchService.RowCount(); loaded {
		resp.Rows = &rows
	}
	c.JSON(http.StatusOK, resp)
}
