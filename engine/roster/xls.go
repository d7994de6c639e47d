package roster

import (
	"github.com/extrame/xls"

	"github.com/greetly/greetly/engine/core"
)

// readXLS reads the first sheet of a legacy BIFF workbook. The reader
// yields cell text; date cells come back as serial-number strings, which
// the normalizer treats the same as native numbers.
func readXLS(path string) ([][]string, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, core.SourceError("open %s: %v", path, err)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, core.SourceError("workbook %s has no sheets", path)
	}
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := []string{row.Col(nameColumn), row.Col(dobColumn)}
		rows = append(rows, cells)
	}
	return rows, nil
}
