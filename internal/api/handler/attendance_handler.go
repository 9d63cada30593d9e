package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nagatani/simple-attendance-with-pasori/config"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/dto"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/service"
	"github.com/Nagatani/simple-attendance-with-pasori/pkg/response"
)

// AttendanceHandler 出席モジュール HTTP ハンドラ
// 講義回はプロセス起動時に固定される（1プロセス1講義回）
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
	session       config.SessionConfig
}

// NewAttendanceHandler AttendanceHandler を作成する
func NewAttendanceHandler(attendanceSvc service.AttendanceService, session config.SessionConfig) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceSvc: attendanceSvc,
		session:       session,
	}
}

// GetSession 現在の講義回の情報
// GET /api/v1/session
func (h *AttendanceHandler) GetSession(c *gin.Context) {
	response.OK(c, dto.SessionResponse{
		SessionID: h.session.ID,
		Title:     h.session.Title,
	})
}

// Attend 出席登録。未知カードはエラー、登録済み記録は訂正として更新する
// POST /api/v1/attendance
func (h *AttendanceHandler) Attend(c *gin.Context) {
	var req dto.AttendRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "card_id is required.")
		return
	}

	studentID, err := h.attendanceSvc.Attend(c.Request.Context(), h.session.ID, req.CardID)
	if err != nil {
		if errors.Is(err, service.ErrCardNotRegistered) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, dto.AttendResponse{
		Status:    "ok",
		StudentID: studentID,
		Message:   fmt.Sprintf("出席登録完了しました: %s", studentID),
	})
}

// Forgot カード忘れの出席登録。登録済みなら既存記録は変更せず競合を返す
// POST /api/v1/attendance/forgot
func (h *AttendanceHandler) Forgot(c *gin.Context) {
	var req dto.ForgotRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "student_id is empty.")
		return
	}

	cardID, err := h.attendanceSvc.Forgot(c.Request.Context(), h.session.ID, req.StudentID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyAttended) {
			c.JSON(http.StatusConflict, dto.ForgotResponse{
				Status:  "error",
				CardID:  cardID,
				Message: fmt.Sprintf("%sは出席登録済みです。", req.StudentID),
			})
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, dto.ForgotResponse{
		Status:  "ok",
		CardID:  cardID,
		Message: fmt.Sprintf("出席登録完了しました: %s", req.StudentID),
	})
}

// ListAttendees 講義回の出席者一覧
// GET /api/v1/attendance?session_id=N（省略時は現在の講義回）
func (h *AttendanceHandler) ListAttendees(c *gin.Context) {
	sessionID := h.session.ID
	if raw := c.Query("session_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "session_id は整数で指定してください。")
			return
		}
		sessionID = parsed
	}

	attendees, err := h.attendanceSvc.ListAttendees(c.Request.Context(), sessionID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, attendees)
}
