package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nagatani/simple-attendance-with-pasori/internal/service"
	"github.com/Nagatani/simple-attendance-with-pasori/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler エクスポートモジュール HTTP ハンドラ
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler ExportHandler を作成する
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAttendance 出席記録を Excel でダウンロードする
// GET /api/v1/export/attendance?session_id=N（0 または省略で全講義回）
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	sessionID := service.AllSessions
	if raw := c.Query("session_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "session_id は整数で指定してください。")
			return
		}
		sessionID = parsed
	}

	buf, filename, err := h.exportSvc.ExportAttendance(c.Request.Context(), sessionID)
	if err != nil {
		response.InternalError(c)
		return
	}

	// ダウンロード用レスポンスヘッダ
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
