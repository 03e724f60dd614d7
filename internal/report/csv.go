package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/bfilipov/warehouse-game/internal/util"
)

// WriteCSV writes the period history, one row per period in ascending
// day order, with a trailing column per catalog activity.
func (r TeamReport) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{
		"day", "money_at_start", "credit_taken", "credit_requested",
		"interest", "rent", "penalties", "money_at_end",
	}
	for _, a := range r.Activities {
		header = append(header, a.ID)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, in := range r.History {
		row := []string{
			strconv.Itoa(in.ActiveAtDay),
			util.Money(in.MoneyAtStart),
			util.Money(in.CreditTaken),
			util.Money(in.CreditToTake),
			util.Money(in.InterestCost),
			util.Money(in.RentCost),
			util.Money(in.PenaltyCost),
			util.Money(in.MoneyAtEnd),
		}
		for _, a := range r.Activities {
			row = append(row, r.statusOn(a.ID, in.ActiveAtDay))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for day %d: %w", in.ActiveAtDay, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
