// internal/pipeline/pipeline.go

// Package pipeline 將 record 串流逐筆送入 bank.Processor。
//
// 讀取與套用分屬兩個 goroutine，以 channel 串接；Processor 只在套用端被存取，
// 因此交易仍依輸入順序逐筆套用。
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"payments/internal/bank"
	"payments/internal/record"
)

// queueSize 為讀取端可領先套用端的筆數。
const queueSize = 256

// Stats 為單次執行的統計。
type Stats struct {
	RunID    string
	Rows     int // 讀到的資料列（不含標頭）
	Applied  int
	Ignored  int
	Rejected int
	Skipped  int // 無法解析而略過的列
}

func (s Stats) fields() []zap.Field {
	return []zap.Field{
		zap.Int("rows", s.Rows),
		zap.Int("applied", s.Applied),
		zap.Int("ignored", s.Ignored),
		zap.Int("rejected", s.Rejected),
		zap.Int("skipped", s.Skipped),
	}
}

type item struct {
	line int
	tx   bank.Transaction
}

// Source 為交易來源；*record.Reader 即為一個實作。
type Source interface {
	Next() (bank.Transaction, error)
	Line() int
}

// Run 讀完 src 並將每筆交易套用到 p。
// 可恢復的單列錯誤會記錄後略過；其他讀取錯誤與 ctx 取消會中止執行並回傳錯誤。
func Run(ctx context.Context, src Source, p *bank.Processor, logger *zap.Logger) (Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	stats := Stats{RunID: uuid.NewString()}
	logger = logger.With(zap.String("run_id", stats.RunID))

	queue := make(chan item, queueSize)
	g, gctx := errgroup.WithContext(ctx)

	// 讀取端：只寫入 rows/skipped，套用端不碰這兩個欄位。
	var rows, skipped int
	g.Go(func() error {
		defer close(queue)
		for {
			tx, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			rows++
			if err != nil {
				if !record.IsRecoverable(err) {
					return fmt.Errorf("read line %d: %w", src.Line(), err)
				}
				skipped++
				logger.Warn("skipping malformed row", zap.Error(err))
				continue
			}
			select {
			case queue <- item{line: src.Line(), tx: tx}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		for it := range queue {
			if err := gctx.Err(); err != nil {
				return err
			}
			o := p.Apply(it.tx)
			switch o.Status {
			case bank.Applied:
				stats.Applied++
			case bank.Ignored:
				stats.Ignored++
				logger.Debug("transaction ignored",
					zap.Int("line", it.line),
					zap.Stringer("kind", it.tx.Kind),
					zap.Uint16("client", uint16(it.tx.Client)),
					zap.Uint32("tx", uint32(it.tx.Tx)),
					zap.Error(o.Reason))
			case bank.Rejected:
				stats.Rejected++
				logger.Warn("transaction rejected",
					zap.Int("line", it.line),
					zap.Stringer("transaction", it.tx),
					zap.Error(o.Reason))
			}
		}
		return nil
	})

	err := g.Wait()
	stats.Rows, stats.Skipped = rows, skipped
	if err != nil {
		logger.Error("run aborted", append(stats.fields(), zap.Error(err))...)
		return stats, err
	}
	logger.Info("run complete", stats.fields()...)
	return stats, nil
}
