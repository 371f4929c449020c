// Package report writes liquidation results to flat files.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

var scheduleHeader = []string{
	"day",
	"date",
	"shares_traded",
	"cum_shares",
	"participation_rate",
	"spread_cost",
	"impact_cost",
	"total_cost",
	"cum_cost",
}

// WriteScheduleCSV writes one row per liquidation day with running totals.
func WriteScheduleCSV(w io.Writer, schedule models.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scheduleHeader); err != nil {
		return err
	}

	var cumShares, cumCost float64
	for _, e := range schedule {
		cumShares += e.SharesTraded
		cumCost += e.TotalCost
		row := []string{
			strconv.Itoa(e.Day),
			fmtDate(e.Date),
			fmtFloat(e.SharesTraded),
			fmtFloat(cumShares),
			fmtFloat(e.ParticipationRate),
			fmtFloat(e.SpreadCost),
			fmtFloat(e.ImpactCost),
			fmtFloat(e.TotalCost),
			fmtFloat(cumCost),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteScheduleFile creates path and writes the schedule into it.
func WriteScheduleFile(path string, schedule models.Schedule) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteScheduleCSV(f, schedule)
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
