/*
Package output implements the result-emission plug-in (C15): one Handler
per output format named in spec.md §6 (N/D/E/C), all safe for concurrent
Emit calls from the Orchestrator's worker pool.
*/
package output

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/bebop-rna/intarna-go/interaction"
)

// Handler consumes predicted interactions and writes them to an underlying
// sink in some format; Close flushes and releases any resources.
type Handler interface {
	Emit(i *interaction.Interaction) error
	Close() error
}

// Text is format N: one compact line per interaction.
type Text struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewText wraps w for plain-text output.
func NewText(w io.Writer) *Text { return &Text{w: bufio.NewWriter(w)} }

func (t *Text) Emit(inter *interaction.Interaction) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(inter.BPs) == 0 {
		return fmt.Errorf("output: cannot emit an interaction with no base pairs")
	}
	first, last := inter.BPs[0], inter.BPs[len(inter.BPs)-1]
	_, err := fmt.Fprintf(t.w, "%d:%d-%d:%d\tE=%.2f\n", first.I+1, last.I+1, first.K+1, last.K+1, inter.E)
	return err
}

func (t *Text) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.w.Flush()
}

// Detailed is format D: one block per interaction, listing every base pair.
type Detailed struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewDetailed wraps w for detailed-text output.
func NewDetailed(w io.Writer) *Detailed { return &Detailed{w: bufio.NewWriter(w)} }

func (d *Detailed) Emit(inter *interaction.Interaction) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(inter.BPs) == 0 {
		return fmt.Errorf("output: cannot emit an interaction with no base pairs")
	}
	if _, err := fmt.Fprintf(d.w, "interaction E=%.2f\n", inter.E); err != nil {
		return err
	}
	for _, bp := range inter.BPs {
		if _, err := fmt.Fprintf(d.w, "  %d:%d\n", bp.I+1, bp.K+1); err != nil {
			return err
		}
	}
	if inter.Seed != nil {
		if _, err := fmt.Fprintf(d.w, "  seed E=%.2f over %d pairs\n", inter.Seed.E, len(inter.Seed.BPs)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Detailed) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.w.Flush()
}

// ZallProvider is implemented by anything that can report a window's
// accumulated partition function, e.g. predictor.Ensemble.
type ZallProvider interface {
	Zall() float64
}

// Ensemble is format E: the single best interaction plus the ensemble's
// Zall summary, consuming a tracker-compatible Zall source.
type Ensemble struct {
	mu  sync.Mutex
	w   *bufio.Writer
	src ZallProvider
}

// NewEnsemble wraps w for ensemble-summary output, reading Zall from src.
func NewEnsemble(w io.Writer, src ZallProvider) *Ensemble {
	return &Ensemble{w: bufio.NewWriter(w), src: src}
}

func (e *Ensemble) Emit(inter *interaction.Interaction) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	zAll := 0.0
	if e.src != nil {
		zAll = e.src.Zall()
	}
	_, err := fmt.Fprintf(e.w, "E=%.2f\tZall=%.6g\n", inter.E, zAll)
	return err
}

func (e *Ensemble) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.w.Flush()
}

// Row is the full set of values a CSV column can be drawn from for one
// interaction. CSV and SortedCSV build it per interaction via
// RowFromInteraction, so ID1, ID2, Zall and PE stay at their zero values.
type Row struct {
	ID1, ID2           string
	Start1, End1       int
	Start2, End2       int
	E                  float64
	HybridDP           string
	BPList             string
	SeedE              float64
	HasSeed            bool
	Zall               float64
	PE                 float64
}

// columnValue renders one named column's value for a row, per spec.md §6's
// vocabulary (id1,id2,start1,end1,start2,end2,E,hybridDP,bpList,seedE,Zall,P_E).
func columnValue(col string, r Row) string {
	switch col {
	case "id1":
		return r.ID1
	case "id2":
		return r.ID2
	case "start1":
		return strconv.Itoa(r.Start1)
	case "end1":
		return strconv.Itoa(r.End1)
	case "start2":
		return strconv.Itoa(r.Start2)
	case "end2":
		return strconv.Itoa(r.End2)
	case "E":
		return strconv.FormatFloat(r.E, 'f', 2, 64)
	case "hybridDP":
		return r.HybridDP
	case "bpList":
		return r.BPList
	case "seedE":
		if !r.HasSeed {
			return ""
		}
		return strconv.FormatFloat(r.SeedE, 'f', 2, 64)
	case "Zall":
		return strconv.FormatFloat(r.Zall, 'g', -1, 64)
	case "P_E":
		return strconv.FormatFloat(r.PE, 'g', -1, 64)
	default:
		return ""
	}
}

// RowFromInteraction builds a Row's interaction-derived fields (callers
// fill in ID1/ID2/Zall/PE, which aren't derivable from an Interaction alone).
func RowFromInteraction(inter *interaction.Interaction) Row {
	if len(inter.BPs) == 0 {
		return Row{E: inter.E}
	}
	first, last := inter.BPs[0], inter.BPs[len(inter.BPs)-1]
	var bpParts []string
	for _, bp := range inter.BPs {
		bpParts = append(bpParts, fmt.Sprintf("%d:%d", bp.I+1, bp.K+1))
	}
	row := Row{
		Start1: first.I + 1, End1: last.I + 1,
		Start2: first.K + 1, End2: last.K + 1,
		E:        inter.E,
		BPList:   strings.Join(bpParts, ","),
		HybridDP: dotBracket(inter),
	}
	if inter.Seed != nil {
		row.HasSeed = true
		row.SeedE = inter.Seed.E
	}
	return row
}

func dotBracket(inter *interaction.Interaction) string {
	var b strings.Builder
	for range inter.BPs {
		b.WriteByte('(')
	}
	b.WriteByte('&')
	for range inter.BPs {
		b.WriteByte(')')
	}
	return b.String()
}

// CSV is format C: one row per interaction with a configurable column set
// and separators.
type CSV struct {
	mu        sync.Mutex
	w         *bufio.Writer
	columns   []string
	colSep    string
	listSep   string
	headerRow bool
}

// NewCSV constructs a CSV handler writing the given columns (spec.md §6's
// vocabulary) separated by colSep, with list-valued columns (like bpList)
// using listSep internally.
func NewCSV(w io.Writer, columns []string, colSep, listSep string) *CSV {
	return &CSV{w: bufio.NewWriter(w), columns: columns, colSep: colSep, listSep: listSep}
}

func (c *CSV) Emit(inter *interaction.Interaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.headerRow {
		if _, err := fmt.Fprintln(c.w, strings.Join(c.columns, c.colSep)); err != nil {
			return err
		}
		c.headerRow = true
	}
	row := RowFromInteraction(inter)
	row.BPList = strings.ReplaceAll(row.BPList, ",", c.listSep)
	values := make([]string, len(c.columns))
	for i, col := range c.columns {
		values[i] = columnValue(col, row)
	}
	_, err := fmt.Fprintln(c.w, strings.Join(values, c.colSep))
	return err
}

func (c *CSV) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Flush()
}

// SortedCSV buffers every row and sorts by ascending energy before writing
// them all on Close, instead of streaming rows as Emit is called.
type SortedCSV struct {
	mu      sync.Mutex
	w       io.Writer
	columns []string
	colSep  string
	listSep string
	rows    []Row
}

// NewSortedCSV constructs a buffering, sort-on-close CSV handler.
func NewSortedCSV(w io.Writer, columns []string, colSep, listSep string) *SortedCSV {
	return &SortedCSV{w: w, columns: columns, colSep: colSep, listSep: listSep}
}

func (s *SortedCSV) Emit(inter *interaction.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := RowFromInteraction(inter)
	row.BPList = strings.ReplaceAll(row.BPList, ",", s.listSep)
	s.rows = append(s.rows, row)
	return nil
}

func (s *SortedCSV) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sort.SliceStable(s.rows, func(i, j int) bool { return s.rows[i].E < s.rows[j].E })
	bw := bufio.NewWriter(s.w)
	if _, err := fmt.Fprintln(bw, strings.Join(s.columns, s.colSep)); err != nil {
		return err
	}
	for _, row := range s.rows {
		values := make([]string, len(s.columns))
		for i, col := range s.columns {
			values[i] = columnValue(col, row)
		}
		if _, err := fmt.Fprintln(bw, strings.Join(values, s.colSep)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
