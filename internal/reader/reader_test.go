package reader

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNormalizeUID(t *testing.T) {
	got := NormalizeUID([]byte{0x04, 0xA1, 0xB2, 0xC3})
	if got != "04A1B2C3" {
		t.Errorf("04A1B2C3 を期待したが、実際=%s", got)
	}
}

func TestValidateCardID(t *testing.T) {
	cardID, err := ValidateCardID("04a1b2c3")
	if err != nil {
		t.Fatalf("16進文字列は通るはず: %v", err)
	}
	if cardID != "04A1B2C3" {
		t.Errorf("大文字に揃うはず、実際=%s", cardID)
	}

	if _, err := ValidateCardID(""); err == nil {
		t.Error("空文字はエラーのはず")
	}
	if _, err := ValidateCardID("xyz"); err == nil {
		t.Error("16進でない文字列はエラーのはず")
	}
}

func TestConsole_Read_SkipsEmptyAndInvalidLines(t *testing.T) {
	in := strings.NewReader("\n  \nnot-hex\n04a1b2c3\n")
	var out bytes.Buffer
	c := NewConsole(in, &out)

	cardID, err := c.Read()
	if err != nil {
		t.Fatalf("Read は成功するはず: %v", err)
	}
	if cardID != "04A1B2C3" {
		t.Errorf("04A1B2C3 を期待したが、実際=%s", cardID)
	}
	if !strings.Contains(out.String(), "不正なカードID") {
		t.Errorf("不正な行には注意メッセージが出るはず: %q", out.String())
	}
}

func TestConsole_Read_EOF(t *testing.T) {
	c := NewConsole(strings.NewReader(""), io.Discard)

	_, err := c.Read()
	if !errors.Is(err, io.EOF) {
		t.Errorf("io.EOF を期待したが、実際: %v", err)
	}
}

func TestConsole_Prompt(t *testing.T) {
	in := strings.NewReader("\nS1001\n")
	var out bytes.Buffer
	c := NewConsole(in, &out)

	line, err := c.Prompt("学籍番号を入力してください。")
	if err != nil {
		t.Fatalf("Prompt は成功するはず: %v", err)
	}
	if line != "S1001" {
		t.Errorf("S1001 を期待したが、実際=%s", line)
	}
	if !strings.Contains(out.String(), "学籍番号を入力してください。") {
		t.Errorf("促しメッセージが出るはず: %q", out.String())
	}
}
