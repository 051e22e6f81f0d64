package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
)

// breakY is the vertical position after which the next chart starts on a fresh page.
const breakY = 250.0

// PDF renders the printable A4 document: the account details section followed by one
// block per chart, in the same order as the JSON rendering.
func PDF(exp *services.UserExport, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Intake fields are free-form text; translate to the core-font codepage.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading := func(text string) {
		pdf.Ln(2)
		pdf.SetTextColor(11, 107, 107)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 9, tr(text), "B", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		pdf.SetTextColor(34, 34, 34)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s: %s", label, value)), "", "L", false)
	}

	pdf.SetTextColor(6, 102, 102)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "Gurukrpa - Customer Export", "", 1, "C", false, 0, "")
	pdf.SetTextColor(102, 102, 102)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, now.UTC().Format("2 Jan 2006 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	heading("Account Details")
	field("Full Name", deref(exp.Profile.FullName))
	field("Email", exp.Profile.Email)
	field("Phone", deref(exp.Profile.Phone))
	field("Referred By", deref(exp.Profile.ReferredBy))
	if exp.Profile.NumberOfCharts != nil {
		field("Number of Charts", fmt.Sprintf("%d", *exp.Profile.NumberOfCharts))
	} else {
		field("Number of Charts", "")
	}
	pdf.Ln(3)

	heading("Charts")
	if len(exp.Charts) == 0 {
		pdf.SetTextColor(34, 34, 34)
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, "No charts for this user.", "", 1, "L", false, 0, "")
	}
	for i, chart := range exp.Charts {
		pdf.Ln(3)
		pdf.SetTextColor(68, 68, 68)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, fmt.Sprintf("Chart %d", i+1), "", 1, "L", false, 0, "")

		field("Person", chart.FullName)
		field("Relation", chart.Relation)
		field("Services", strings.Join(chart.SelectedServices, ", "))
		field("Date of Birth", deref(chart.DateOfBirth))
		field("Time of Birth", deref(chart.TimeOfBirth))
		field("Place of Birth", chart.PlaceOfBirth)
		field("Address", chart.Address)
		field("Occupation", chart.Occupation)
		field("Question 1", chart.Question1)
		field("Question 2", chart.Question2)
		field("Question 3", chart.Question3)

		if pdf.GetY() > breakY && i < len(exp.Charts)-1 {
			pdf.AddPage()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
