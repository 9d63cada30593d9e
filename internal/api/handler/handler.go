package handler

import (
	"github.com/Nagatani/simple-attendance-with-pasori/config"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/service"
)

// Handler 全 Handler の集約
type Handler struct {
	Student    *StudentHandler
	Attendance *AttendanceHandler
	Export     *ExportHandler
}

// NewHandler Handler 集約を作成する
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Student:    NewStudentHandler(svc.Registry, svc.Attendance, cfg.Session.ID),
		Attendance: NewAttendanceHandler(svc.Attendance, cfg.Session),
		Export:     NewExportHandler(svc.Export),
	}
}
