package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Table — строки таблицы после строки заголовка. Ячейки обрезаны по пробелам.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// Cell возвращает значение колонки column в строке row, либо "" если колонки нет.
func (t *Table) Cell(row []string, column string) string {
	idx, ok := t.index[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Processor отвечает за чтение выгрузки поставщика (XLS или CSV).
// Выгрузка начинается с шапки произвольной длины, таблица — с первой строки,
// в которой есть все колонки columns.
type Processor struct {
	columns  []string
	comma    rune
	encoding encoding.Encoding
}

// NewProcessor создаёт Processor; CSV по умолчанию читается в Windows-1251 с разделителем ';'.
func NewProcessor(columns []string) *Processor {
	return &Processor{
		columns:  columns,
		comma:    ';',
		encoding: charmap.Windows1251,
	}
}

func (p *Processor) SetComma(comma rune) *Processor {
	if comma != 0 {
		p.comma = comma
	}
	return p
}

// SetEncoding принимает имя кодировки в терминах WHATWG ("windows-1251", "utf-8", ...).
func (p *Processor) SetEncoding(name string) (*Processor, error) {
	if name == "" {
		return p, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return p, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	p.encoding = enc
	return p, nil
}

// ProcessCSV декодирует reader и возвращает таблицу начиная со строки заголовка.
func (p *Processor) ProcessCSV(reader io.Reader) (*Table, error) {
	decoder := transform.NewReader(reader, p.encoding.NewDecoder())
	csvReader := csv.NewReader(decoder)
	csvReader.Comma = p.comma
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("csv data is empty")
	}
	return p.tableFrom(allRows)
}

// tableFrom ищет строку заголовка и собирает таблицу из следующих за ней непустых строк.
func (p *Processor) tableFrom(allRows [][]string) (*Table, error) {
	for i, row := range allRows {
		row = trimCells(row)
		if !p.isHeader(row) {
			continue
		}

		table := &Table{Header: row, index: make(map[string]int, len(row))}
		for idx, col := range row {
			if _, dup := table.index[col]; !dup {
				table.index[col] = idx
			}
		}
		for _, r := range allRows[i+1:] {
			r = trimCells(r)
			if isBlank(r) {
				continue
			}
			table.Rows = append(table.Rows, r)
		}
		return table, nil
	}

	return nil, fmt.Errorf("header with columns %s not found in %d rows", strings.Join(p.columns, ", "), len(allRows))
}

func (p *Processor) isHeader(row []string) bool {
	for _, col := range p.columns {
		if indexOf(row, col) < 0 {
			return false
		}
	}
	return len(p.columns) > 0
}

func indexOf(slice []string, str string) int {
	for i, s := range slice {
		if s == str {
			return i
		}
	}
	return -1
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
