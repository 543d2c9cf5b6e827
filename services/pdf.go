package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/catalog"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/database"
)

// GenerateTripPDF renders a saved trip and returns raw bytes (no filesystem needed).
// Core PDF fonts are Latin-1 only, so every string goes through the
// translator returned by UnicodeTranslatorFromDescriptor.
func GenerateTripPDF(trip *database.Trip, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 8,
			fmt.Sprintf("Generated by Voyage AI Travel Planner - Not a booking confirmation - Page %d", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Voyage AI", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67) // gold
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, tr(trip.Title), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 10, "FD")
	pdf.SetXY(23, y+2)
	pdf.MultiCell(164, 4, "This is NOT a booking confirmation. Prices are indicative and subject to change. Verify with providers before booking.", "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	// ── Traveler Info ─────────────────────────────────────────
	sectionHeader("Traveler Information")
	name := trip.TravelerName
	if name == "" {
		name = "Guest Traveler"
	}
	row("Name", name)
	row("Travelers", fmt.Sprintf("%d adult(s)", trip.Adults))
	row("Generated", now.UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	if trip.Origin != "" {
		row("Route", fmt.Sprintf("%s - %s - %s", placeName(trip.Origin), placeName(trip.Destination), placeName(trip.Origin)))
	} else {
		row("Destination", placeName(trip.Destination))
	}
	row("Start", fmtDateReadable(trip.StartDate))
	row("End", fmtDateReadable(trip.EndDate))
	row("Duration", fmt.Sprintf("%d nights", trip.Nights()))
	pdf.Ln(4)

	total := 0.0
	currency := ""

	// ── Selected Flight ───────────────────────────────────────
	if f := trip.Flight; f != nil {
		sectionHeader("Selected Flight")
		airline := f.Airline
		if f.FlightNumber != "" {
			airline += " " + f.FlightNumber
		}
		row("Airline", airline)
		row("Outbound", formatFlightLeg(f.DepartureTime, f.ArrivalTime, f.Duration))
		if f.ReturnDepartureTime != "" {
			row("Return", formatFlightLeg(f.ReturnDepartureTime, f.ReturnArrivalTime, ""))
		}
		stops := "Direct"
		if f.Stops > 0 {
			stops = fmt.Sprintf("%d stop(s)", f.Stops)
		}
		row("Stops", stops)
		row("Price", formatMoney(f.Price, f.Currency))
		total += f.Price
		currency = f.Currency
		pdf.Ln(4)
	}

	// ── Selected Hotel ────────────────────────────────────────
	if h := trip.Hotel; h != nil {
		sectionHeader("Selected Hotel")
		row("Hotel", h.Name)
		if h.Address != "" {
			row("Address", h.Address)
		}
		row("Check-in", fmtDateReadable(trip.StartDate))
		row("Check-out", fmtDateReadable(trip.EndDate))
		row("Price", fmt.Sprintf("%s for %d nights", formatMoney(h.Price, h.Currency), trip.Nights()))
		if currency == "" || currency == h.Currency {
			total += h.Price
			currency = h.Currency
		} else {
			total = -1
		}
		pdf.Ln(4)
	}

	// ── Cost Summary ──────────────────────────────────────────
	if trip.Flight != nil || trip.Hotel != nil {
		sectionHeader("Cost Estimate")
		pdf.SetFillColor(212, 168, 67)
		pdf.SetTextColor(13, 24, 37)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
		summary := "Mixed currencies, see sections above"
		if total >= 0 {
			summary = formatMoney(total, currency)
		}
		pdf.CellFormat(115, 9, summary, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	// ── Day Plan ──────────────────────────────────────────────
	if len(trip.Days) > 0 {
		sectionHeader("Day by Day")
		for _, d := range trip.Days {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(13, 24, 37)
			pdf.CellFormat(170, 7, tr(fmt.Sprintf("Day %d  %s  %s", d.Day, fmtDateReadable(d.Date), d.Title)), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(40, 40, 40)
			for _, slot := range [][2]string{{"Morning", d.Morning}, {"Afternoon", d.Afternoon}, {"Evening", d.Evening}} {
				if slot[1] == "" {
					continue
				}
				pdf.CellFormat(25, 5, slot[0], "", 0, "L", false, 0, "")
				pdf.MultiCell(145, 5, tr(slot[1]), "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	// ── Notes ─────────────────────────────────────────────────
	if trip.Notes != "" {
		sectionHeader("Notes")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, tr(trip.Notes), "", "L", false)
	}

	// ── Write to buffer ───────────────────────────────────────
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func placeName(code string) string {
	if d, ok := catalog.Lookup(code); ok {
		return fmt.Sprintf("%s (%s)", d.Name, d.Code)
	}
	return code
}

func formatMoney(amount float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%s %.2f", currency, amount)
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}

func formatFlightLeg(dep, arr, dur string) string {
	depT, err1 := time.Parse(time.RFC3339, dep)
	arrT, err2 := time.Parse(time.RFC3339, arr)
	if err1 != nil || err2 != nil {
		if dep != "" && arr != "" {
			return dep + " - " + arr
		}
		return "N/A"
	}
	result := fmt.Sprintf("%s - %s",
		depT.Format("02 Jan 15:04"),
		arrT.Format("02 Jan 15:04"))
	if dur != "" {
		result += fmt.Sprintf(" (%s)", dur)
	}
	return result
}
