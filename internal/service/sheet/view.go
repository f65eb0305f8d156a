package sheet

import (
	"context"
	"sync"

	"github.com/tallyhr/attendance-backend-go/internal/domain/payroll"
)

// View is the operator's active monthly sheet. Every refresh is tagged with
// the period it was issued for, and a result that arrives after the operator
// has switched periods is discarded: a slow response for month A must never
// overwrite the display after the operator moved to month B.
type View struct {
	svc payroll.SheetService

	mu      sync.RWMutex
	year    int
	month   int
	sheet   payroll.Sheet
	hasData bool
}

func NewView(svc payroll.SheetService, year, month int) *View {
	return &View{svc: svc, year: year, month: month}
}

// SetPeriod switches the active period. The previous period's rows are
// dropped immediately so a stale sheet is never shown against the new period.
func (v *View) SetPeriod(year, month int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.year == year && v.month == month {
		return
	}
	v.year = year
	v.month = month
	v.sheet = payroll.Sheet{}
	v.hasData = false
}

// Period returns the currently active (year, month).
func (v *View) Period() (int, int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.year, v.month
}

// Refresh rebuilds the sheet for the period active at call time and applies
// it only if that period is still active when the build resolves.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.RLock()
	year, month := v.year, v.month
	v.mu.RUnlock()

	sheet, err := v.svc.BuildMonthlySheet(ctx, year, month, "")
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.year != year || v.month != month {
		// The operator navigated away while the fetch was in flight.
		return nil
	}
	v.sheet = sheet
	v.hasData = true
	return nil
}

// Snapshot returns the displayed sheet and whether any data has been loaded
// for the active period yet.
func (v *View) Snapshot() (payroll.Sheet, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sheet, v.hasData
}
