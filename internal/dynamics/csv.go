package dynamics

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteLedgerCSV(path string, ledger []RoundRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"round",
		"schedule_a",
		"schedule_b",
		"cost_a",
		"cost_b",
		"cum_cost_a",
		"cum_cost_b",
		"welfare",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Round),
			r.ScheduleA.Key(),
			r.ScheduleB.Key(),
			fmtFloat(r.CostA),
			fmtFloat(r.CostB),
			fmtFloat(r.CumCostA),
			fmtFloat(r.CumCostB),
			fmtFloat(r.Welfare),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
