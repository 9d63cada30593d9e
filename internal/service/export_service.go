package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Nagatani/simple-attendance-with-pasori/internal/model"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/repository"
)

// ── エクスポートモジュール業務エラー ──

var (
	// ErrExportGenerateFail Excel ファイルの生成に失敗した
	ErrExportGenerateFail = errors.New("Excelファイルの生成に失敗しました。")
)

// AllSessions 全講義回をまとめて出力するセレクタ値
const AllSessions = 0

// ExportService 出席記録のエクスポート業務インターフェース
//
//   - sessionID = AllSessions(0): 記録が存在する講義回ごとに1シート
//   - それ以外: 指定講義回のみの1シート（記録ゼロでもヘッダ行だけのシートを出す）
//   - 毎回その時点の全記録からファイルを作り直す（追記モードなし）
type ExportService interface {
	// ExportAttendance Excel ワークブックと推奨ファイル名を返す
	ExportAttendance(ctx context.Context, sessionID int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService ExportService インスタンスを作成する
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// シートのヘッダ行
var exportHeader = []interface{}{"ID", "カードID", "学籍番号", "カード忘れ", "登録日時", "更新日時"}

const exportTimeFormat = "2006-01-02 15:04:05"

func (s *exportService) ExportAttendance(ctx context.Context, sessionID int) (*bytes.Buffer, string, error) {
	// 1. 対象の講義回を決める
	var sessions []int
	filename := ""
	if sessionID == AllSessions {
		ids, err := s.repo.Attendance.ListSessionIDs(ctx)
		if err != nil {
			s.logger.Error("講義回一覧の取得に失敗しました", zap.Error(err))
			return nil, "", err
		}
		sessions = ids
		filename = "attendance_all.xlsx"
	} else {
		sessions = []int{sessionID}
		filename = fmt.Sprintf("attendance_session_%d.xlsx", sessionID)
	}

	// 2. ワークブックを生成する
	f := excelize.NewFile()
	defer f.Close()

	for _, sid := range sessions {
		records, err := s.repo.Attendance.ListBySession(ctx, sid)
		if err != nil {
			s.logger.Error("出席記録の取得に失敗しました", zap.Int("session_id", sid), zap.Error(err))
			return nil, "", err
		}

		sheetName := strconv.Itoa(sid)
		if _, err := f.NewSheet(sheetName); err != nil {
			s.logger.Error("シートの作成に失敗しました", zap.String("sheet", sheetName), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}

		if err := writeSheet(f, sheetName, records); err != nil {
			s.logger.Error("シートの書き込みに失敗しました", zap.String("sheet", sheetName), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	// デフォルトの Sheet1 を削除する（全講義回モードで記録ゼロの場合だけ残す）
	if len(sessions) > 0 {
		f.DeleteSheet("Sheet1")
	}

	// 3. バッファに書き出す
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("Excel の書き出しに失敗しました", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	s.logger.Info("出席記録をエクスポートしました",
		zap.Int("sheets", len(sessions)),
		zap.String("filename", filename),
	)
	return buf, filename, nil
}

// writeSheet ヘッダ行と出席記録を1シート分書き込む
func writeSheet(f *excelize.File, sheetName string, records []model.Attendance) error {
	if err := f.SetSheetRow(sheetName, "A1", &exportHeader); err != nil {
		return err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			rec.ID,
			rec.CardID,
			rec.StudentID,
			rec.ForgotCard,
			rec.CreatedAt.Format(exportTimeFormat),
			rec.UpdatedAt.Format(exportTimeFormat),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
