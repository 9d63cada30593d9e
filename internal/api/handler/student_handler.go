package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Nagatani/simple-attendance-with-pasori/internal/dto"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/service"
	"github.com/Nagatani/simple-attendance-with-pasori/pkg/response"
)

// StudentHandler カード台帳モジュール HTTP ハンドラ
type StudentHandler struct {
	registrySvc   service.RegistryService
	attendanceSvc service.AttendanceService
	sessionID     int
}

// NewStudentHandler StudentHandler を作成する
func NewStudentHandler(registrySvc service.RegistryService, attendanceSvc service.AttendanceService, sessionID int) *StudentHandler {
	return &StudentHandler{
		registrySvc:   registrySvc,
		attendanceSvc: attendanceSvc,
		sessionID:     sessionID,
	}
}

// ListStudents 登録済み学生の一覧
// GET /api/v1/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.registrySvc.ListStudents(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, students)
}

// Register カードと学籍番号の新規登録（現在の講義回の出席記録も作成する）
// POST /api/v1/students
func (h *StudentHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "card_id or student_id is empty.")
		return
	}

	if err := h.attendanceSvc.RegisterCard(c.Request.Context(), h.sessionID, req.CardID, req.StudentID); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.AttendResponse{
		Status:    "ok",
		StudentID: req.StudentID,
		Message:   fmt.Sprintf("出席登録完了しました: %s", req.StudentID),
	})
}
