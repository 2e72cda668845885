package listview

import (
	"strings"
	"time"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

// BuildCSV renders a header row plus one row per record, every cell
// wrapped in double quotes. A cell containing a double quote produces
// malformed CSV; that limitation is accepted for this export.
func BuildCSV(header []string, rows [][]string) string {
	var b strings.Builder
	writeRow(&b, header)
	for _, row := range rows {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(cell)
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// ExportFilename stamps the export with the current date.
func ExportFilename(prefix string, now time.Time) string {
	return prefix + "-" + now.Format("2006-01-02") + ".csv"
}

var customerCSVHeader = []string{"name", "email", "phone", "notes", "source", "status", "created_at"}

// CustomersCSV exports the (already filtered) customer list.
func CustomersCSV(customers []domain.Customer) string {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.Name,
			c.Email,
			c.Phone,
			c.Notes,
			c.Source,
			string(c.Status),
			c.CreatedAt.Format("2006-01-02"),
		})
	}
	return BuildCSV(customerCSVHeader, rows)
}
