package listview

import (
	"encoding/csv"
	"fmt"
	"io"

	"venueadmin/internal/domain/tablesettings"
)

// WriteCSV writes a header line and one record per item. Columns are laid
// out with settings so the export matches what the user sees; cells use
// their plain text.
func WriteCSV[T any](w io.Writer, data []T, columns []Column[T], settings tablesettings.TableSettings) error {
	ordered := OrderColumns(columns, settings)
	cw := csv.NewWriter(w)

	header := make([]string, len(ordered))
	for i, c := range ordered {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(ordered))
	for _, item := range data {
		for i, c := range ordered {
			record[i] = c.CellFor(item).Text
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
