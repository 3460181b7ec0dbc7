// internal/record/errors.go

package record

import (
	"errors"
	"fmt"
)

// ErrMissingColumn 代表標頭缺少必要欄位；屬於致命錯誤，整個執行必須中止。
var ErrMissingColumn = errors.New("missing required column")

// ErrEmptyInput 代表輸入沒有任何標頭列。
var ErrEmptyInput = errors.New("empty input: header row required")

// ParseError 為單列資料的可恢復錯誤：略過該列並繼續。
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// IsRecoverable 回報 err 是否為可略過的單列錯誤。
func IsRecoverable(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
