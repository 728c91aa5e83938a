// Package curating transforma o razão bruto de vendas na tabela de features do modelo.
package curating

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/encoding"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
	"github.com/vfg2006/sales-forecast-api/pkg/utils"
)

// DropReason é o motivo pelo qual uma linha saiu da tabela
type DropReason string

const (
	DropBadLine    DropReason = "bad_line"
	DropSentinel   DropReason = "sentinel"
	DropMalformed  DropReason = "malformed"
	DropNegative   DropReason = "negative"
	DropKit        DropReason = "kit"
	DropSingleSale DropReason = "single_sale"
	DropPareto     DropReason = "pareto"
)

const (
	DefaultParetoThreshold = 0.80
	DefaultKitMarker       = "KIT"
)

type Options struct {
	ParetoThreshold float64
	KitMarker       string
}

type Option func(*Options)

func WithParetoThreshold(threshold float64) Option {
	return func(o *Options) { o.ParetoThreshold = threshold }
}

func WithKitMarker(marker string) Option {
	return func(o *Options) { o.KitMarker = marker }
}

// Pipeline é determinística: a mesma entrada produz sempre a mesma saída
type Pipeline struct {
	opts Options
}

func NewPipeline(opts ...Option) *Pipeline {
	options := Options{
		ParetoThreshold: DefaultParetoThreshold,
		KitMarker:       DefaultKitMarker,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Pipeline{opts: options}
}

// Result reúne a tabela curada e os artefatos derivados dela
type Result struct {
	Records  []domain.CuratedRecord
	Snapshot []domain.CombinationStart
	Encoder  *encoding.Encoder
	Report   Report
}

// parsedRow é a linha depois da normalização de tipos
type parsedRow struct {
	raw      domain.SalesRecord
	year     int
	month    int
	code     string
	measures [5]Measure // galões, vendas, utilidade bruta, custos, margem
	valid    bool       // ano, mês, código e categóricas presentes
}

// Run executa as etapas na ordem. O contexto é verificado entre etapas.
func (p *Pipeline) Run(ctx context.Context, raw []domain.SalesRecord) (*Result, error) {
	report := newReport(len(raw))

	rows := normalize(raw)

	steps := []struct {
		name string
		fn   func([]parsedRow, *Report) []parsedRow
	}{
		{"validity", filterInvalid},
		{"kit", p.filterKits},
		{"single_sale", filterSingleSale},
		{"pareto", p.selectPareto},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("curadoria interrompida antes da etapa %s: %w", step.name, err)
		}
		before := len(rows)
		rows = step.fn(rows, &report)

		log.L.WithFields(log.Fields{
			"curation_step":    step.name,
			"curation_before":  before,
			"curation_after":   len(rows),
			"curation_dropped": before - len(rows),
		}).Debug("curation: etapa concluída")
	}

	records := make([]domain.CuratedRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.curated())
	}

	result := &Result{
		Records:  records,
		Snapshot: BuildSnapshot(records),
		Encoder:  encoding.Fit(records),
	}
	report.OutputRows = len(records)
	report.Combinations = len(result.Snapshot)
	report.SchemaFingerprint = result.Encoder.Fingerprint
	result.Report = report

	log.L.WithFields(log.Fields{
		"curation_input":        report.InputRows,
		"curation_output":       report.OutputRows,
		"curation_combinations": report.Combinations,
		"curation_products":     report.RetainedProducts,
	}).Info("curation: tabela curada gerada")

	return result, nil
}

func normalize(raw []domain.SalesRecord) []parsedRow {
	rows := make([]parsedRow, 0, len(raw))

	for _, r := range raw {
		row := parsedRow{raw: r}

		year, okYear := parseCalendar(r.Year)
		month, okMonth := parseCalendar(r.Month)
		code, okCode := domain.NormalizeProductCode(r.ProductCode)

		row.year, row.month, row.code = year, month, code
		row.valid = okYear && okMonth && okCode && month >= 1 && month <= 12 &&
			present(r.BusinessUnit, r.Region, r.Channel, r.BrandLine, r.ProductName)

		row.measures = [5]Measure{
			ParseMeasure(r.Gallons),
			ParseMeasure(r.Revenue),
			ParseMeasure(r.GrossProfit),
			ParseMeasure(r.Cost),
			ParseMeasure(r.Margin),
		}

		rows = append(rows, row)
	}

	return rows
}

// filterInvalid remove sentinelas, campos ausentes e medidas negativas
func filterInvalid(rows []parsedRow, report *Report) []parsedRow {
	kept := rows[:0:0]

	for _, row := range rows {
		switch {
		case hasSentinel(row.raw):
			report.drop(DropSentinel)
		case !row.valid || !allValid(row.measures):
			report.drop(DropMalformed)
		case anyNegative(row.measures):
			report.drop(DropNegative)
		default:
			kept = append(kept, row)
		}
	}

	return kept
}

// filterKits remove kits, que são pacotes e não unidades vendáveis
func (p *Pipeline) filterKits(rows []parsedRow, report *Report) []parsedRow {
	marker := strings.ToUpper(p.opts.KitMarker)
	kept := rows[:0:0]

	for _, row := range rows {
		if marker != "" && strings.Contains(strings.ToUpper(row.raw.ProductName), marker) {
			report.drop(DropKit)
			continue
		}
		kept = append(kept, row)
	}

	return kept
}

// filterSingleSale remove produtos com um único registro, tratados como ruído
func filterSingleSale(rows []parsedRow, report *Report) []parsedRow {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.code]++
	}

	kept := rows[:0:0]
	for _, row := range rows {
		if counts[row.code] == 1 {
			report.drop(DropSingleSale)
			continue
		}
		kept = append(kept, row)
	}

	return kept
}

// selectPareto mantém os produtos cuja participação acumulada na receita
// não passa do limite
func (p *Pipeline) selectPareto(rows []parsedRow, report *Report) []parsedRow {
	ranking := RankPareto(revenueByProduct(rows), p.opts.ParetoThreshold)

	report.Products = make([]ParetoEntry, len(ranking))
	for i, entry := range ranking {
		entry.Revenue = utils.RoundWithTwoDecimalPlace(entry.Revenue)
		report.Products[i] = entry
	}

	retained := make(map[string]bool, len(ranking))
	for _, entry := range ranking {
		if entry.Retained {
			retained[entry.ProductCode] = true
			report.RetainedProducts++
		}
	}

	kept := rows[:0:0]
	for _, row := range rows {
		if !retained[row.code] {
			report.drop(DropPareto)
			continue
		}
		kept = append(kept, row)
	}

	return kept
}

func revenueByProduct(rows []parsedRow) map[string]float64 {
	totals := make(map[string]float64)
	for _, row := range rows {
		totals[row.code] += row.measures[1].Value
	}
	return totals
}

// ParetoEntry é uma linha do ranking de produtos por receita
type ParetoEntry struct {
	ProductCode     string  `json:"product_code"`
	Revenue         float64 `json:"revenue"`
	CumulativeShare float64 `json:"cumulative_share"`
	Retained        bool    `json:"retained"`
}

// RankPareto ordena por receita decrescente (empate pelo código) e marca como retidos
// os produtos cuja participação acumulada é <= threshold. Receita total nula não retém nada.
func RankPareto(revenue map[string]float64, threshold float64) []ParetoEntry {
	ranking := make([]ParetoEntry, 0, len(revenue))
	total := 0.0
	for code, value := range revenue {
		ranking = append(ranking, ParetoEntry{ProductCode: code, Revenue: value})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Revenue != ranking[j].Revenue {
			return ranking[i].Revenue > ranking[j].Revenue
		}
		return codeLess(ranking[i].ProductCode, ranking[j].ProductCode)
	})

	// soma na ordem do ranking, como a soma acumulada
	for _, entry := range ranking {
		total += entry.Revenue
	}

	cumulative := 0.0
	for i := range ranking {
		cumulative += ranking[i].Revenue
		if total > 0 {
			ranking[i].CumulativeShare = cumulative / total
			ranking[i].Retained = ranking[i].CumulativeShare <= threshold
		}
	}

	return ranking
}

// BuildSnapshot agrupa pela chave completa de seis campos e guarda o menor mês.
// A ordem de saída é a da primeira aparição de cada chave.
func BuildSnapshot(records []domain.CuratedRecord) []domain.CombinationStart {
	position := make(map[domain.CombinationKey]int)
	snapshot := make([]domain.CombinationStart, 0)

	for _, r := range records {
		i, seen := position[r.Key]
		if !seen {
			position[r.Key] = len(snapshot)
			snapshot = append(snapshot, domain.CombinationStart{Key: r.Key, Start: r.Period})
			continue
		}
		if r.Period.Before(snapshot[i].Start) {
			snapshot[i].Start = r.Period
		}
	}

	return snapshot
}

func (r parsedRow) curated() domain.CuratedRecord {
	return domain.CuratedRecord{
		Key: domain.CombinationKey{
			BusinessUnit: strings.TrimSpace(r.raw.BusinessUnit),
			Region:       strings.TrimSpace(r.raw.Region),
			Channel:      strings.TrimSpace(r.raw.Channel),
			BrandLine:    strings.TrimSpace(r.raw.BrandLine),
			ProductCode:  r.code,
			ProductName:  strings.TrimSpace(r.raw.ProductName),
		},
		Period:      domain.YearMonth{Year: r.year, Month: r.month},
		Gallons:     r.measures[0].Value,
		Revenue:     r.measures[1].Value,
		GrossProfit: r.measures[2].Value,
		Cost:        r.measures[3].Value,
		Margin:      r.measures[4].Value,
	}
}

// codeLess compara códigos de produto numericamente
func codeLess(a, b string) bool {
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	if errA != nil || errB != nil {
		return a < b
	}
	return x < y
}

func hasSentinel(r domain.SalesRecord) bool {
	for _, field := range r.Fields() {
		if strings.TrimSpace(field) == DivByZeroSentinel {
			return true
		}
	}
	return false
}

func present(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func allValid(measures [5]Measure) bool {
	for _, m := range measures {
		if !m.Valid {
			return false
		}
	}
	return true
}

func anyNegative(measures [5]Measure) bool {
	for _, m := range measures {
		if m.Value < 0 {
			return true
		}
	}
	return false
}
