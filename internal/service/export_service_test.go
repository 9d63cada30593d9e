package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Nagatani/simple-attendance-with-pasori/internal/model"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/repository"
)

// ── テスト補助 ──

func setupTestExportService() (ExportService, *mockAttendanceRepo) {
	attendanceRepo := newMockAttendanceRepo()
	repo := &repository.Repository{
		Student:    newMockStudentRepo(),
		Attendance: attendanceRepo,
	}
	svc := NewExportService(repo, zap.NewNop())
	return svc, attendanceRepo
}

func addRecord(t *testing.T, repo *mockAttendanceRepo, sessionID int, cardID, studentID string) {
	t.Helper()
	err := repo.Create(context.Background(), &model.Attendance{
		SessionID: sessionID,
		CardID:    cardID,
		StudentID: studentID,
	})
	if err != nil {
		t.Fatalf("テストデータの作成に失敗: %v", err)
	}
}

func openWorkbook(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("生成した Excel を開けない: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

// ── ExportAttendance テスト ──

func TestExportService_SingleSession_EmptyStillHasHeader(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, filename, err := svc.ExportAttendance(context.Background(), 3)
	if err != nil {
		t.Fatalf("ExportAttendance は成功するはず: %v", err)
	}
	if filename != "attendance_session_3.xlsx" {
		t.Errorf("想定外のファイル名: %s", filename)
	}

	f := openWorkbook(t, buf)
	rows, err := f.GetRows("3")
	if err != nil {
		t.Fatalf("シート 3 が存在するはず: %v", err)
	}
	// 記録ゼロでもヘッダ行だけのシートが出る
	if len(rows) != 1 {
		t.Fatalf("ヘッダ行のみの1行を期待したが、実際=%d", len(rows))
	}
	if rows[0][1] != "カードID" || rows[0][2] != "学籍番号" {
		t.Errorf("想定外のヘッダ行: %v", rows[0])
	}
}

func TestExportService_SingleSession_RowsOrderedByStudentID(t *testing.T) {
	svc, attendanceRepo := setupTestExportService()
	addRecord(t, attendanceRepo, 3, "04B", "S2002")
	addRecord(t, attendanceRepo, 3, "04A", "S1001")
	addRecord(t, attendanceRepo, 4, "04A", "S1001") // 別講義回は含まれない

	buf, _, err := svc.ExportAttendance(context.Background(), 3)
	if err != nil {
		t.Fatalf("ExportAttendance は成功するはず: %v", err)
	}

	f := openWorkbook(t, buf)
	rows, err := f.GetRows("3")
	if err != nil {
		t.Fatalf("シート 3 が存在するはず: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ヘッダ + 2行を期待したが、実際=%d", len(rows))
	}
	if rows[1][2] != "S1001" || rows[2][2] != "S2002" {
		t.Errorf("学籍番号順のはず: %v / %v", rows[1], rows[2])
	}

	if sheets := f.GetSheetList(); len(sheets) != 1 {
		t.Errorf("シートは1枚のはず、実際=%v", sheets)
	}
}

func TestExportService_AllSessions_OneSheetPerSession(t *testing.T) {
	svc, attendanceRepo := setupTestExportService()
	addRecord(t, attendanceRepo, 3, "04A", "S1001")
	addRecord(t, attendanceRepo, 3, "04B", "S2002")
	addRecord(t, attendanceRepo, 5, "04A", "S1001")

	buf, filename, err := svc.ExportAttendance(context.Background(), AllSessions)
	if err != nil {
		t.Fatalf("ExportAttendance は成功するはず: %v", err)
	}
	if filename != "attendance_all.xlsx" {
		t.Errorf("想定外のファイル名: %s", filename)
	}

	f := openWorkbook(t, buf)
	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("講義回ごとに1シートのはず、実際=%v", sheets)
	}

	// シートごとの行数 = その講義回の記録数
	for sheet, want := range map[string]int{"3": 3, "5": 2} { // ヘッダ行込み
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("シート %s が存在するはず: %v", sheet, err)
		}
		if len(rows) != want {
			t.Errorf("シート %s は %d 行のはず、実際=%d", sheet, want, len(rows))
		}
	}
}

func TestExportService_ForgotMarkInSheet(t *testing.T) {
	svc, attendanceRepo := setupTestExportService()
	err := attendanceRepo.Create(context.Background(), &model.Attendance{
		SessionID:  3,
		CardID:     "S1002",
		StudentID:  "S1002",
		ForgotCard: model.ForgotCardMark,
	})
	if err != nil {
		t.Fatalf("テストデータの作成に失敗: %v", err)
	}

	buf, _, err := svc.ExportAttendance(context.Background(), 3)
	if err != nil {
		t.Fatalf("ExportAttendance は成功するはず: %v", err)
	}

	f := openWorkbook(t, buf)
	rows, err := f.GetRows("3")
	if err != nil {
		t.Fatalf("シート 3 が存在するはず: %v", err)
	}
	if rows[1][3] != model.ForgotCardMark {
		t.Errorf("カード忘れ列に印が入るはず、実際=%q", rows[1][3])
	}
}
