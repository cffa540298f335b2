package export

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

// WritePDF renders a compact paginated table: name, email, phone, source,
// status, created. The full field set only fits in CSV/Excel.
func WritePDF(w io.Writer, leads []entity.Lead) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "UrbanCruise - Leads Export", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, "Generated on: "+time.Now().Format("2006-01-02"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"Name", "Email", "Phone", "Source", "Status", "Created"}
	widths := []float64{35, 55, 30, 20, 25, 25}

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(79, 129, 189)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}
	writeHeader()

	for i, lead := range leads {
		if i > 0 && i%25 == 0 {
			pdf.AddPage()
			writeHeader()
		}
		cells := []string{
			lead.Name,
			lead.Email,
			orDash(lead.Phone),
			lead.Source,
			lead.Status,
			lead.CreatedAt.Format(dateLayout),
		}
		for c, value := range cells {
			pdf.CellFormat(widths[c], 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func orDash(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
