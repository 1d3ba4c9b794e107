package clickhouse

import (
	"context"
	"fmt"

	"github.com/feebridge/feebridge/internal/clickhouse"
	"github.com/feebridge/feebridge/internal/domain/student"
	ierr "github.com/feebridge/feebridge/internal/errors"
	"github.com/feebridge/feebridge/internal/logger"
)

const defaultStudentTable = "student_fees"

type StudentRepository struct {
	store  *clickhouse.ClickHouseStore
	table  string
	logger *logger.Logger
}

func NewStudentRepository(store *clickhouse.ClickHouseStore, table string, logger *logger.Logger) student.Repository {
	if table == "" {
		table = defaultStudentTable
	}
	return &StudentRepository{store: store, table: table, logger: logger}
}

// List loads the full dataset snapshot from the warehouse
func (r *StudentRepository) List(ctx context.Context) ([]*student.Student, error) {
	query := fmt.Sprintf(`
		SELECT
			name, admission_number, school, class, section, fee_due
		FROM %s
	`, r.table)

	rows, err := r.store.GetConn().Query(ctx, query)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load student dataset").
			WithReportableDetails(map[string]interface{}{
				"table": r.table,
			}).
			Mark(ierr.ErrSystem)
	}
	defer rows.Close()

	var students []*student.Student
	for rows.Next() {
		var s student.Student
		if err := rows.ScanStruct(&s); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan student row").
				Mark(ierr.ErrSystem)
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read student dataset").
			Mark(ierr.ErrSystem)
	}

	r.logger.Infow("loaded student dataset", "rows", len(students), "table", r.table)
	return students, nil
}
