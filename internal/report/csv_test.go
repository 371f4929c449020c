package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

func sampleSchedule() models.Schedule {
	d := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return models.Schedule{
		{Day: 1, Date: d, SharesTraded: 100, CostBreakdown: models.CostBreakdown{SpreadCost: 1, ImpactCost: 2, TotalCost: 3, ParticipationRate: 0.1}},
		{Day: 2, Date: d.AddDate(0, 0, 1), SharesTraded: 50, CostBreakdown: models.CostBreakdown{SpreadCost: 0.5, ImpactCost: 0.5, TotalCost: 1, ParticipationRate: 0.05}},
	}
}

func TestWriteScheduleCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScheduleCSV(&buf, sampleSchedule()); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "day" || rows[0][len(rows[0])-1] != "cum_cost" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	last := rows[2]
	if last[1] != "2025-03-04" || last[3] != "150.000000" || last[8] != "4.000000" {
		t.Fatalf("unexpected totals %v", last)
	}
}

func TestWriteScheduleCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScheduleCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want header only, got %d rows", len(rows))
	}
}

func TestWriteScheduleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	if err := WriteScheduleFile(path, sampleSchedule()); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("day,date,shares_traded")) {
		t.Fatalf("unexpected content %q", b)
	}

	if err := WriteScheduleFile(filepath.Join(t.TempDir(), "missing", "x.csv"), nil); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
