package repository

import (
	"github.com/feebridge/feebridge/internal/clickhouse"
	"github.com/feebridge/feebridge/internal/config"
	"github.com/feebridge/feebridge/internal/domain/student"
	"github.com/feebridge/feebridge/internal/logger"
	clickhouseRepo "github.com/feebridge/feebridge/internal/repository/clickhouse"
)

func NewStudentRepository(store *clickhouse.ClickHouseStore, cfg *config.Configuration, logger *logger.Logger) student.Repository {
	return clickhouseRepo.NewStudentRepository(store, cfg.ClickHouse.Table, logger)
}
