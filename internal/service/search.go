package service

import (
	"context"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/feebridge/feebridge/internal/api/dto"
	"github.com/feebridge/feebridge/internal/config"
	"github.com/feebridge/feebridge/internal/domain/student"
	ierr "github.com/feebridge/feebridge/internal/errors"
	"github.com/feebridge/feebridge/internal/logger"
)

// SearchService answers read-only queries against the preloaded student fee
// dataset
type SearchService interface {
	// Search filters the current snapshot. The request must already be
	// validated.
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)

	// Reload replaces the snapshot from the warehouse. On failure the
	// previous snapshot stays in place.
	Reload(ctx context.Context) error

	// RowCount returns the snapshot size and whether a snapshot was ever
	// loaded
	RowCount() (int, bool)
}

type searchService struct {
	repo   student.Repository
	cfg    *config.Configuration
	logger *logger.Logger

	mu       sync.RWMutex
	students []*student.Student
	loaded   bool
}

func NewSearchService(repo student.Repository, cfg *config.Configuration, logger *logger.Logger) SearchService {
	return &searchService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	s.mu.RLock()
	snapshot, loaded := s.students, s.loaded
	s.mu.RUnlock()

	if !loaded {
		return nil, ierr.NewError("student dataset is not loaded").
			WithHint("Dataset failed to load, try again later").
			Mark(ierr.ErrSystem)
	}

	school := req.School
	if school == "" {
		school = s.cfg.Search.DefaultSchool
	}

	name := strings.ToLower(req.Name)
	admission := strings.ToLower(req.Admission)
	schoolLower := strings.ToLower(school)

	matches := lo.Filter(snapshot, func(st *student.Student, _ int) bool {
		return strings.Contains(strings.ToLower(st.Name), name) &&
			strings.Contains(strings.ToLower(st.AdmissionNumber), admission) &&
			strings.ToLower(st.School) == schoolLower
	})

	if max := s.cfg.Search.MaxResults; max > 0 && len(matches) > max {
		matches = matches[:max]
	}

	return &dto.SearchResponse{
		Results: matches,
		Count:   len(matches),
	}, nil
}

func (s *searchService) Reload(ctx context.Context) error {
	students, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Errorw("failed to reload student dataset", "error", err)
		return err
	}

	s.mu.Lock()
	s.students = students
	s.loaded = true
	s.mu.Unlock()

	s.logger.Infow("student dataset reloaded", "rows", len(students))
	return nil
}

func (s *searchService) RowCount() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students), s.loaded
}
