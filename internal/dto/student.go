package dto

// ── カード台帳モジュール DTO ──

// RegisterRequest カード・学籍番号の新規登録リクエスト
type RegisterRequest struct {
	CardID    string `form:"card_id"    json:"card_id"    binding:"required"`
	StudentID string `form:"student_id" json:"student_id" binding:"required"`
}

// StudentPair 一覧系エンドポイントの (カードID, 学籍番号) ペア
type StudentPair struct {
	CardID    string `json:"card_id"`
	StudentID string `json:"student_id"`
}
