package tabledist

import (
	"math"

	"github.com/katalvlaran/cartograph/columnbasis"
	"github.com/katalvlaran/cartograph/titers"
)

// Entry is one target distance between two map points.
type Entry struct {
	PointI, PointJ int
	Distance       float64
}

// TableDistances holds the regular and less-than flat distance lists
// (spec.md §3). LessThan entries carry a soft inequality rather than an
// exact target: stress's sigmoid penalty pushes the map distance out
// and fades once it exceeds Distance+1.
type TableDistances struct {
	Regular  []Entry
	LessThan []Entry
}

// Options configures table-distance computation.
type Options struct {
	// AvidityAdjust returns the raw (multiplicative) avidity adjustment
	// for map point p (antigen or serum), default 1.0 when unset
	// (spec.md §3 Projection AvidityAdjusts default). Compute converts
	// it to the log-space term the distance formula needs via log2, so
	// the default contributes 0 to the distance.
	AvidityAdjust func(point int) float64
	// Disconnected marks points excluded entirely from the output
	// (spec.md §3 "Disconnected points contribute no entries").
	Disconnected map[int]bool
	// DodgyIsRegular routes Dodgy titers into the Regular list instead
	// of dropping them (spec.md §3).
	DodgyIsRegular bool
}

// Compute builds TableDistances for titer table t using column bases
// cb. Serum point indices are numAntigens+serumIndex.
func Compute(t *titers.Titers, cb *columnbasis.ColumnBases, opts Options) TableDistances {
	avidity := opts.AvidityAdjust
	if avidity == nil {
		avidity = func(int) float64 { return 1.0 }
	}
	numAntigens := t.NumAntigens()
	var out TableDistances

	for ag := 0; ag < numAntigens; ag++ {
		if opts.Disconnected[ag] {
			continue
		}
		for sr := 0; sr < t.NumSera(); sr++ {
			sPoint := numAntigens + sr
			if opts.Disconnected[sPoint] {
				continue
			}
			tt, err := t.Titer(ag, sr)
			if err != nil || tt.IsDontCare() || !tt.IsValid() {
				continue
			}
			if tt.IsMoreThan() {
				continue // discarded per spec.md §3
			}
			if tt.IsDodgy() && !opts.DodgyIsRegular {
				continue
			}

			basis, err := cb.Get(sr)
			if err != nil {
				continue
			}
			d := basis - tt.LoggedWithThresholded() - (math.Log2(avidity(ag)) + math.Log2(avidity(sPoint)))
			if d < 0 {
				d = 0
			}
			entry := Entry{PointI: ag, PointJ: sPoint, Distance: d}
			if tt.IsLessThan() {
				out.LessThan = append(out.LessThan, entry)
			} else {
				out.Regular = append(out.Regular, entry)
			}
		}
	}

	return out
}
