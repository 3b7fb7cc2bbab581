// Package quota tracks the character cost of a translation run: per-unit
// prechecks against the remaining allowance, running totals for the file
// and the whole run, and the after-the-fact comparison of estimated
// against actually consumed quota.
package quota

import (
	"fmt"
	"io"

	"github.com/valpere/peremd/internal/translator"
)

// overrunPercent is how far actual consumption may exceed the estimate
// before Reconcile warns. Service-side overhead (markers, markup
// escaping) is not perfectly predictable.
const overrunPercent = 10

// Accountant accumulates translation costs. In live mode a unit that
// would exceed the remaining quota is a fatal error; in estimate-only
// mode the same condition is only warned about.
type Accountant struct {
	live     bool
	warn     io.Writer
	snapshot translator.Usage
	fileCost int
	runCost  int
	files    int
}

// New returns an Accountant. Warnings go to warn (typically stderr).
func New(live bool, warn io.Writer) *Accountant {
	return &Accountant{live: live, warn: warn}
}

// StartFile resets the per-file total and records the usage snapshot that
// subsequent prechecks are measured against.
func (a *Accountant) StartFile(u translator.Usage) {
	a.snapshot = u
	a.fileCost = 0
	a.files++
}

// Precheck verifies that a unit of the given character cost still fits
// the remaining allowance, accounting for everything already spent on the
// current file. Unknown or unmetered usage passes.
func (a *Accountant) Precheck(cost int) error {
	if !a.snapshot.Valid {
		return nil
	}
	if a.snapshot.AnyLimitReached {
		if a.live {
			return fmt.Errorf("account: %w", translator.ErrLimitReached)
		}
		a.warnf("translation limit already reached on the account")
		return nil
	}
	remaining := a.snapshot.Remaining() - int64(a.fileCost)
	if int64(cost) > remaining {
		if a.live {
			return fmt.Errorf("unit needs %d characters but only %d remain: %w",
				cost, remaining, translator.ErrQuotaExceeded)
		}
		a.warnf("projected cost %d exceeds remaining quota %d", cost, remaining)
	}
	return nil
}

// Account adds a unit's character cost to the file and run totals.
func (a *Accountant) Account(cost int) {
	a.fileCost += cost
	a.runCost += cost
}

// FileCost returns the estimated cost of the current file so far.
func (a *Accountant) FileCost() int { return a.fileCost }

// RunCost returns the estimated cost across all files of the run.
func (a *Accountant) RunCost() int { return a.runCost }

// Files returns how many files have been started.
func (a *Accountant) Files() int { return a.files }

// Reconcile compares the quota actually consumed between two usage
// queries with the current file's estimate and warns when consumption
// overshoots by more than overrunPercent. It returns the actual usage and
// whether it warned; unknown usage on either side reports (0, false).
func (a *Accountant) Reconcile(pre, post translator.Usage) (int64, bool) {
	if !pre.Valid || !post.Valid {
		return 0, false
	}
	actual := post.Count - pre.Count
	if actual*100 > int64(a.fileCost)*(100+overrunPercent) {
		a.warnf("actual quota usage (%d) exceeds the estimate (%d) by more than %d%%",
			actual, a.fileCost, overrunPercent)
		return actual, true
	}
	return actual, false
}

func (a *Accountant) warnf(format string, args ...any) {
	if a.warn != nil {
		fmt.Fprintf(a.warn, "Warning: "+format+"\n", args...)
	}
}
