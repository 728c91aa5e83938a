package ledger

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/encoding"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/curating"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Nomes dos artefatos dentro do diretório de saída
const (
	CuratedFile  = "curated.csv"
	SnapshotFile = "start_dates.csv"
	EncoderFile  = "encoding.json"
	ReportFile   = "report.json"
)

var snapshotHeader = []string{
	encoding.ColumnBusinessUnit,
	encoding.ColumnRegion,
	encoding.ColumnChannel,
	encoding.ColumnBrandLine,
	encoding.ColumnProductCode,
	encoding.ColumnProductName,
	encoding.ColumnMinYear,
	encoding.ColumnMinMonth,
}

// ArtifactStore grava os artefatos de uma execução em um diretório
type ArtifactStore struct {
	dir string
}

func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir}
}

func (s *ArtifactStore) Dir() string {
	return s.dir
}

// Save grava tabela curada, snapshot, codificação e relatório. Todos os arquivos
// são escritos em temporários e só são renomeados depois que todos foram gravados,
// então uma falha de escrita mantém a geração anterior inteira.
func (s *ArtifactStore) Save(result *curating.Result) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório de artefatos %s", s.dir)
	}

	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{CuratedFile, func(w io.Writer) error { return WriteCurated(w, result.Records, result.Encoder) }},
		{SnapshotFile, func(w io.Writer) error { return WriteSnapshot(w, result.Snapshot) }},
		{EncoderFile, result.Encoder.Save},
		{ReportFile, func(w io.Writer) error { return writeReport(w, result.Report) }},
	}

	staged := make([]stagedFile, 0, len(writers))
	defer func() {
		for _, f := range staged {
			os.Remove(f.tmp)
		}
	}()

	for _, wr := range writers {
		f, err := stage(filepath.Join(s.dir, wr.name), wr.write)
		if err != nil {
			return err
		}
		staged = append(staged, f)
	}

	for _, f := range staged {
		if err := os.Rename(f.tmp, f.path); err != nil {
			return errors.Wrapf(err, "erro ao publicar %s", f.path)
		}
	}

	log.L.WithFields(log.Fields{
		"curation_dir":     s.dir,
		"curation_records": len(result.Records),
	}).Info("curation: artefatos gravados")

	return nil
}

// WriteCurated grava a tabela curada: features codificadas, medidas, rótulo e nome do produto
func WriteCurated(w io.Writer, records []domain.CuratedRecord, enc *encoding.Encoder) error {
	cw := csv.NewWriter(w)

	header := append([]string{}, enc.Columns...)
	header = append(header, encoding.MeasureColumns...)
	header = append(header, encoding.ColumnRevenue, encoding.ColumnProductName)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "erro ao gravar cabeçalho da tabela curada")
	}

	for _, r := range records {
		row, err := enc.Row(r.Key, r.Period)
		if err != nil {
			return errors.Wrapf(err, "erro ao codificar %s", r.Key)
		}

		line := make([]string, 0, len(header))
		for _, v := range row.Values {
			line = append(line, formatFloat(v))
		}
		line = append(line,
			formatFloat(r.Gallons),
			formatFloat(r.GrossProfit),
			formatFloat(r.Cost),
			formatFloat(r.Margin),
			formatFloat(r.Revenue),
			r.Key.ProductName,
		)

		if err := cw.Write(line); err != nil {
			return errors.Wrap(err, "erro ao gravar linha da tabela curada")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "erro ao finalizar tabela curada")
}

// WriteSnapshot grava o snapshot de datas mínimas
func WriteSnapshot(w io.Writer, snapshot []domain.CombinationStart) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(snapshotHeader); err != nil {
		return errors.Wrap(err, "erro ao gravar cabeçalho do snapshot")
	}

	for _, s := range snapshot {
		err := cw.Write([]string{
			s.Key.BusinessUnit,
			s.Key.Region,
			s.Key.Channel,
			s.Key.BrandLine,
			s.Key.ProductCode,
			s.Key.ProductName,
			strconv.Itoa(s.Start.Year),
			strconv.Itoa(s.Start.Month),
		})
		if err != nil {
			return errors.Wrap(err, "erro ao gravar linha do snapshot")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "erro ao finalizar snapshot")
}

// ReadSnapshot lê o snapshot gravado por WriteSnapshot. Linhas com ano ou mês
// ilegível são ignoradas com aviso.
func ReadSnapshot(r io.Reader) ([]domain.CombinationStart, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(snapshotHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler cabeçalho do snapshot")
	}
	for i, name := range snapshotHeader {
		if header[i] != name {
			return nil, errors.Wrapf(ErrMissingColumn, "snapshot: esperado %q na posição %d", name, i)
		}
	}

	var snapshot []domain.CombinationStart
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler snapshot")
		}

		year, errYear := strconv.Atoi(fields[6])
		month, errMonth := strconv.Atoi(fields[7])
		start := domain.YearMonth{Year: year, Month: month}
		if errYear != nil || errMonth != nil || !start.Valid() {
			log.L.WithFields(log.Fields{
				"combination_year":  fields[6],
				"combination_month": fields[7],
			}).Warn("combination: data mínima ilegível no snapshot, linha ignorada")
			continue
		}

		snapshot = append(snapshot, domain.CombinationStart{
			Key: domain.CombinationKey{
				BusinessUnit: fields[0],
				Region:       fields[1],
				Channel:      fields[2],
				BrandLine:    fields[3],
				ProductCode:  fields[4],
				ProductName:  fields[5],
			},
			Start: start,
		})
	}

	return snapshot, nil
}

// LoadSnapshot lê o snapshot do diretório de artefatos
func LoadSnapshot(dir string) ([]domain.CombinationStart, error) {
	path := filepath.Join(dir, SnapshotFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir snapshot %s", path)
	}
	defer f.Close()

	return ReadSnapshot(f)
}

// LoadEncoder lê e valida a codificação do diretório de artefatos
func LoadEncoder(dir string) (*encoding.Encoder, error) {
	path := filepath.Join(dir, EncoderFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir codificação %s", path)
	}
	defer f.Close()

	enc, err := encoding.Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "codificação inválida em %s", path)
	}
	return enc, nil
}

func writeReport(w io.Writer, report curating.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

type stagedFile struct {
	path string
	tmp  string
}

// stage grava o conteúdo em um temporário ao lado do destino, sem publicá-lo
func stage(path string, write func(io.Writer) error) (stagedFile, error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return stagedFile{}, errors.Wrapf(err, "erro ao gerar %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return stagedFile{}, errors.Wrapf(err, "erro ao criar temporário para %s", path)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return stagedFile{}, errors.Wrapf(err, "erro ao gravar %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return stagedFile{}, errors.Wrapf(err, "erro ao fechar %s", path)
	}

	return stagedFile{path: path, tmp: tmp.Name()}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
