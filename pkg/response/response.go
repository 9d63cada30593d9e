package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response エラー系のフラットなレスポンス（status 判別子 + メッセージ）
// 正常系は各エンドポイント固有の DTO をそのまま返す
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OK 200 成功レスポンス（v は status フィールドを持つ DTO）
func OK(c *gin.Context, v interface{}) {
	c.JSON(http.StatusOK, v)
}

// Error 汎用エラーレスポンス
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{
		Status:  "error",
		Message: message,
	})
}

// ── よく使うショートカット ──

// BadRequest 400 入力不足・形式不正
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409 登録済みなどの競合
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "サーバー内部エラーが発生しました。")
}
