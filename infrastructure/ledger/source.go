package ledger

import (
	"context"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

// FileSource lê o razão de um arquivo local a cada execução
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(ctx context.Context) ([]domain.SalesRecord, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	result, err := ReadLedgerFile(s.path)
	if err != nil {
		return nil, 0, err
	}
	return result.Records, result.BadLines, nil
}
