package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/feebridge/feebridge/internal/api/dto"
	"github.com/feebridge/feebridge/internal/config"
	"github.com/feebridge/feebridge/internal/domain/student"
	"github.com/feebridge/feebridge/internal/logger"
	"github.com/feebridge/feebridge/internal/rest/middleware"
	"github.com/feebridge/feebridge/internal/service"
	"github.com/feebridge/feebridge/internal/testutil"
)

type SearchHandlerSuite struct {
	suite.Suite
	router      *gin.Engine
	studentRepo *testutil.InMemoryStudentStore
	service     service.SearchService
}

func TestSearchHandler(t *testing.T) {
	suite.Run(t, new(SearchHandlerSuite))
}

func (s *SearchHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	s.studentRepo = testutil.NewInMemoryStudentStore()
	s.service = service.NewSearchService(s.studentRepo, cfg, logger.L)

	handler := NewSearchHandler(s.service, logger.L)

	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())
	s.router.GET("/search", handler.Search)
	s.router.GET("/health", handler.Health)
}

func (s *SearchHandlerSuite) loadDataset() {
	s.studentRepo.SetStudents([]*student.Student{
		{Name: "Asha Verma", AdmissionNumber: "A123", School: "Janakpuri"},
	})
	s.Require().NoError(s.service.Reload(context.Background()))
}

func (s *SearchHandlerSuite) get(url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *SearchHandlerSuite) TestSearchReturnsMatches() {
	s.loadDataset()

	w := s.get("/search?name=Asha&admission=A123")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.SearchResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(1, resp.Count)
}

func (s *SearchHandlerSuite) TestShortQueryIs400() {
	s.loadDataset()

	w := s.get("/search?name=As&admission=A123")

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *SearchHandlerSuite) TestTrimmedQueryLengthIsEnforced() {
	s.loadDataset()

	w := s.get("/search?name=" + "%20%20A%20%20" + "&admission=A123")

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *SearchHandlerSuite) TestUnloadedDatasetIs500() {
	w := s.get("/search?name=Asha&admission=A123")

	s.Equal(http.StatusInternalServerError, w.Code)
}

func (s *SearchHandlerSuite) TestHealthReportsRowCount() {
	s.loadDataset()

	w := s.get("/health")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.HealthResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("ok", resp.Status)
	s.Require().NotNil(resp.Rows)
	s.Equal(1, *resp.Rows)
}

func (s *SearchHandlerSuite) TestHealthOmitsRowsWhenUnloaded() {
	w := s.get("/health")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.HealthResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("ok", resp.Status)
	s.Nil(resp.Rows)
}
