package feed

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/extrame/xls"
)

// Сигнатура составного документа OLE2, в котором лежит книга Excel 97-2003.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Process выбирает формат по расширению name, для безымянного файла — по содержимому.
func (p *Processor) Process(name string, data []byte) (*Table, error) {
	if strings.EqualFold(path.Ext(name), ".xls") || bytes.HasPrefix(data, oleMagic) {
		return p.ProcessXLS(bytes.NewReader(data))
	}
	return p.ProcessCSV(bytes.NewReader(data))
}

// ProcessXLS читает первый лист книги и возвращает таблицу начиная со строки заголовка.
func (p *Processor) ProcessXLS(reader io.ReadSeeker) (table *Table, err error) {
	// xls паникует на битых файлах
	defer func() {
		if r := recover(); r != nil {
			table, err = nil, fmt.Errorf("xls read error: %v", r)
		}
	}()

	wb, err := xls.OpenReader(reader, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("xls read error: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("xls workbook has no sheets")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("xls workbook has no sheets")
	}

	allRows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			allRows = append(allRows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		allRows = append(allRows, trimTrailing(cells))
	}
	if isBlank(slices.Concat(allRows...)) {
		return nil, fmt.Errorf("xls sheet is empty")
	}
	return p.tableFrom(allRows)
}

func trimTrailing(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}
