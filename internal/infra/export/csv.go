package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

var exportHeader = []string{
	"ID", "Name", "Email", "Phone", "Service", "Vehicle", "City",
	"Rental Days", "Rental Months", "Source", "Campaign", "Keyword",
	"Status", "Assigned To", "Notes", "Created Date", "Last Update",
}

const dateLayout = "2006-01-02"

func leadRow(i int, lead entity.Lead) []string {
	return []string{
		strconv.Itoa(i + 1),
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Service,
		lead.Vehicle,
		lead.City,
		lead.RentalDays,
		lead.RentalMonths,
		lead.Source,
		lead.Campaign,
		lead.Keyword,
		lead.Status,
		lead.AssignedTo,
		strings.Join(lead.Notes, "; "),
		lead.CreatedAt.Format(dateLayout),
		lead.UpdatedAt.Format(dateLayout),
	}
}

func WriteCSV(w io.Writer, leads []entity.Lead) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for i, lead := range leads {
		if err := writer.Write(leadRow(i, lead)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
