// Package reader はカード入力源との境界を定義する。
// NFC リーダーのドライバ層は外部コラボレータであり、ここではドライバが読み取った
// 生 UID の正規化と、手入力（コンソール）での代替入力だけを扱う。
package reader

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Source カード入力源。Read は次のカードIDが得られるまでブロックする
type Source interface {
	Read() (string, error)
}

// NormalizeUID 生のカード UID を大文字16進文字列のカードIDへ変換する
func NormalizeUID(raw []byte) string {
	return strings.ToUpper(hex.EncodeToString(raw))
}

// ValidateCardID カードIDが16進文字列であることを確認し、大文字に揃えて返す
func ValidateCardID(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("カードIDが空です")
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("不正なカードIDです: %q", s)
	}
	return strings.ToUpper(s), nil
}

// Console 行入力をカードIDとして扱う入力源（手入力・バーコードリーダー兼用）
type Console struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewConsole Console を作成する
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		sc:  bufio.NewScanner(in),
		out: out,
	}
}

// Read 次の非空行をカードIDとして返す。16進でない行は読み捨てて促し直す。
// 入力が尽きたら io.EOF
func (c *Console) Read() (string, error) {
	for c.sc.Scan() {
		line := strings.TrimSpace(c.sc.Text())
		if line == "" {
			continue
		}
		cardID, err := ValidateCardID(line)
		if err != nil {
			fmt.Fprintln(c.out, err.Error())
			continue
		}
		return cardID, nil
	}
	if err := c.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Prompt メッセージを表示して1行読む（学籍番号の手入力用）
func (c *Console) Prompt(message string) (string, error) {
	fmt.Fprintln(c.out, message)
	for c.sc.Scan() {
		line := strings.TrimSpace(c.sc.Text())
		if line == "" {
			continue
		}
		return line, nil
	}
	if err := c.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
