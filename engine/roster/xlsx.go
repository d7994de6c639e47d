package roster

import (
	"github.com/xuri/excelize/v2"

	"github.com/greetly/greetly/engine/core"
)

// readXLSX reads the first sheet of an OOXML workbook. Raw cell values are
// requested so date cells arrive as their underlying serial numbers instead
// of locale-formatted display strings.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, core.SourceError("open %s: %v", path, err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.SourceError("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, core.SourceError("read sheet %q: %v", sheets[0], err)
	}
	return rows, nil
}
