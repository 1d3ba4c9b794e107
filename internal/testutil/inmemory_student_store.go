package testutil

import (
	"context"
	"sync"

	"github.com/feebridge/feebridge/internal/domain/student"
	ierr "github.com/feebridge/feebridge/internal/errors"
)

// InMemoryStudentStore implements student.Repository for testing
type InMemoryStudentStore struct {
	mu       sync.RWMutex
	students []*student.Student
	failWith error
}

func NewInMemoryStudentStore() *InMemoryStudentStore {
	return &InMemoryStudentStore{}
}

// SetStudents replaces the dataset the store returns
func (s *InMemoryStudentStore) SetStudents(students []*student.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = students
}

// FailWith makes the next List calls return the given error
func (s *InMemoryStudentStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *InMemoryStudentStore) List(ctx context.Context) ([]*student.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, ierr.WithError(s.failWith).
			WithHint("Failed to load student dataset").
			Mark(ierr.ErrSystem)
	}
	out := make([]*student.Student, len(s.students))
	copy(out, s.students)
	return out, nil
}
