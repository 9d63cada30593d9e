package service

import (
	"go.uber.org/zap"

	"github.com/Nagatani/simple-attendance-with-pasori/config"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/repository"
)

// Service 全 Service の集約
type Service struct {
	Registry   RegistryService
	Attendance AttendanceService
	Export     ExportService
}

// NewService Service 集約を作成する
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	registry := NewRegistryService(cfg, repo, logger)
	return &Service{
		Registry:   registry,
		Attendance: NewAttendanceService(repo, registry, logger),
		Export:     NewExportService(repo, logger),
	}
}
