package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/bfilipov/warehouse-game/internal/util"
)

// WritePDF renders the period history as a printable report: one
// section per period with its figures, followed by the activity board.
func (r TeamReport) WritePDF(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Team Report: %s (game %d, day %d)",
		r.Team.DisplayName, r.Game.ID, r.Game.CurrentDay))
	pdf.Ln(12)

	for _, in := range r.History {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, fmt.Sprintf("Day %d", in.ActiveAtDay))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 12)
		lines := []string{
			fmt.Sprintf("Money at start: %s", util.Money(in.MoneyAtStart)),
			fmt.Sprintf("Credit taken: %s", util.Money(in.CreditTaken)),
			fmt.Sprintf("Interest: %s   Rent: %s   Penalties: %s",
				util.Money(in.InterestCost), util.Money(in.RentCost), util.Money(in.PenaltyCost)),
			fmt.Sprintf("Money at end: %s", util.Money(in.MoneyAtEnd)),
		}
		for _, line := range lines {
			pdf.Cell(0, 8, "  "+line)
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Activities")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)

	finished := 0
	for _, a := range r.Activities {
		status := "[ ]"
		switch r.statusOn(a.ID, r.Game.CurrentDay) {
		case "finished":
			status = "[x]"
			finished++
		case "in_progress":
			status = "[~]"
		}
		pdf.Cell(0, 8, fmt.Sprintf("  %s %s - %s", status, a.ID, a.Title))
		pdf.Ln(6)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Activities Finished: %d of %d", finished, len(r.Activities)))

	return pdf.Output(w)
}
