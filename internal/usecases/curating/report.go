package curating

// Report resume uma execução da curadoria
type Report struct {
	InputRows         int                `json:"input_rows"`
	BadLines          int                `json:"bad_lines"`
	Dropped           map[DropReason]int `json:"dropped"`
	OutputRows        int                `json:"output_rows"`
	RetainedProducts  int                `json:"retained_products"`
	Combinations      int                `json:"combinations"`
	SchemaFingerprint string             `json:"schema_fingerprint"`
	Products          []ParetoEntry      `json:"products"`
}

func newReport(inputRows int) Report {
	return Report{
		InputRows: inputRows,
		Dropped: map[DropReason]int{
			DropSentinel:   0,
			DropMalformed:  0,
			DropNegative:   0,
			DropKit:        0,
			DropSingleSale: 0,
			DropPareto:     0,
		},
	}
}

func (r *Report) drop(reason DropReason) {
	r.Dropped[reason]++
}

// WithBadLines registra as linhas que o leitor do razão descartou antes da curadoria
func (r *Report) WithBadLines(n int) {
	r.BadLines = n
	r.Dropped[DropBadLine] = n
}

// TotalDropped soma as linhas removidas pelas etapas da curadoria
func (r Report) TotalDropped() int {
	total := 0
	for reason, n := range r.Dropped {
		if reason == DropBadLine {
			continue
		}
		total += n
	}
	return total
}
