package usecase

import (
	"fmt"
	"strings"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

// Alias chains per canonical field. Lookups are case-sensitive: every
// accepted casing is listed explicitly, first non-empty match wins.
// The table is the same for every source; adapters only differ in the
// fallback source they supply.
var fieldAliases = map[string][]string{
	"name":         {"name", "full name", "fullname", "Name", "Full Name", "fullName", "full_name"},
	"email":        {"email", "Email"},
	"phone":        {"phone", "mobile", "contact", "Phone", "Mobile", "Contact"},
	"service":      {"service", "service type", "servicetype", "serviceType", "Service", "Service Type"},
	"vehicle":      {"vehicle", "vehicle type", "vehicletype", "vehicleType", "Vehicle", "Vehicle Type"},
	"city":         {"city", "location", "City", "Location"},
	"rentalDays":   {"rental days", "rentaldays", "rentalDays", "days", "Rental Days", "Days"},
	"rentalMonths": {"rental months", "rentalmonths", "rentalMonths", "months", "Rental Months", "Months"},
	"source":       {"source", "Source"},
	"campaign":     {"campaign", "campaign name", "campaignname", "campaignName", "Campaign", "Campaign Name"},
	"keyword":      {"keyword", "keywords", "Keyword", "Keywords"},
	"status":       {"status", "Status"},
	"notes":        {"notes", "description", "comments", "Notes", "Description", "Comments"},
}

const defaultService = "GENERAL"

// Normalize maps a raw record with arbitrary key naming into the canonical
// lead shape. fallbackSource is used when the record carries no source of
// its own (e.g. "import", "url_import"). Pure function, no side effects.
//
// Returns ErrUnusableRecord when both name and email come out empty; such
// candidates must be dropped by the caller, never stored.
func Normalize(raw map[string]any, fallbackSource string) (*entity.Lead, error) {
	lead := &entity.Lead{
		Name:         probe(raw, "name"),
		Email:        probe(raw, "email"),
		Phone:        probe(raw, "phone"),
		Service:      probeDefault(raw, "service", defaultService),
		Vehicle:      probe(raw, "vehicle"),
		City:         probe(raw, "city"),
		RentalDays:   probe(raw, "rentalDays"),
		RentalMonths: probe(raw, "rentalMonths"),
		Source:       probeDefault(raw, "source", fallbackSource),
		Campaign:     probe(raw, "campaign"),
		Keyword:      probe(raw, "keyword"),
		Status:       probeDefault(raw, "status", entity.StatusNew),
	}

	if note := probe(raw, "notes"); note != "" {
		lead.Notes = []string{note}
	} else {
		lead.Notes = []string{}
	}

	if lead.Name == "" && lead.Email == "" {
		return nil, ErrUnusableRecord
	}

	return lead, nil
}

func probe(raw map[string]any, field string) string {
	for _, alias := range fieldAliases[field] {
		if v, ok := raw[alias]; ok {
			if s := stringValue(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func probeDefault(raw map[string]any, field, fallback string) string {
	if s := probe(raw, field); s != "" {
		return s
	}
	return fallback
}

// stringValue renders cell values coming from JSON or spreadsheet parsers.
// Spreadsheet cells arrive as strings; JSON may carry numbers or bools.
func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		// JSON numbers. Avoid "3.000000" noise for integral values.
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	case bool:
		return fmt.Sprintf("%t", s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}
