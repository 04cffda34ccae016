package chart

import (
	"fmt"

	"github.com/katalvlaran/cartograph/projection"
	"github.com/katalvlaran/cartograph/projections"
	"github.com/katalvlaran/cartograph/titers"
)

// SourceInfo is one entry of Info's optional "S" source-info array
// (spec.md §6): a chart merged from several tables carries one Info per
// contributing source alongside the merged Info.
type SourceInfo struct {
	Virus      string
	VirusType  string
	Assay      string
	Date       string
	Name       string
	Lab        string
	RbcSpecies string
	Subset     string
}

// Info is the chart-level metadata block (.ace "c.i", spec.md §6).
type Info struct {
	Virus      string
	VirusType  string
	Assay      string
	Date       string
	Name       string
	Lab        string
	RbcSpecies string
	Subset     string
	Sources    []SourceInfo
}

// Antigen is one antigen row's metadata (.ace "c.a" entries, spec.md §6).
type Antigen struct {
	Name         string
	Date         string
	Passage      string
	Reassortant  string
	LabIDs       []string
	SemanticFlag []string // "R" reference, "E" egg
	Annotations  []string
	Clades       []string
	Lineage      string // "V" or "Y"
	Continent    string
	AA           string // amino acid sequence
	Nuc          string // nucleotide sequence
}

// IsReference reports whether the antigen carries the "R" semantic flag.
func (a Antigen) IsReference() bool { return hasFlag(a.SemanticFlag, "R") }

// IsEgg reports whether the antigen carries the "E" semantic flag.
func (a Antigen) IsEgg() bool { return hasFlag(a.SemanticFlag, "E") }

// Serum is one serum column's metadata (.ace "c.s" entries, spec.md §6).
// It omits Date/LabIDs (antigen-only fields) and adds SerumID,
// SerumSpecies and HomologousAntigens.
type Serum struct {
	Name               string
	Passage            string
	Reassortant        string
	SemanticFlag       []string
	Annotations        []string
	Clades             []string
	Lineage            string
	Continent          string
	AA                 string
	Nuc                string
	SerumID            string
	SerumSpecies       string
	HomologousAntigens []int
}

// IsReference reports whether the serum carries the "R" semantic flag.
func (s Serum) IsReference() bool { return hasFlag(s.SemanticFlag, "R") }

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}

	return false
}

// PlotSpec is an opaque, round-tripped plot-styling payload (.ace "c.p",
// spec.md §3/§6): point shapes/colors, drawing order, and legend rows
// are all external-collaborator concerns, so this package keeps the
// whole sub-document as decoded JSON and passes it through load/save
// unexamined.
type PlotSpec struct {
	Raw map[string]interface{}
}

// IsEmpty reports whether the plot spec carries no data, matching
// cc/chart's "don't emit c.p at all when empty" export behavior.
func (p PlotSpec) IsEmpty() bool { return len(p.Raw) == 0 }

// Chart is the top-level antigenic cartography aggregate (spec.md §3).
// The zero value is not usable; construct with New.
type Chart struct {
	info     Info
	antigens []Antigen
	sera     []Serum

	titers *titers.Titers

	forcedColumnBases map[int]float64

	projections *projections.Set

	plotSpec PlotSpec
}

// New constructs a Chart from its antigen/serum metadata and titer
// table. Returns ErrInvalidData if antigens.len()+sera.len() disagrees
// with t's point count (spec.md §3 invariant).
func New(info Info, antigens []Antigen, sera []Serum, t *titers.Titers) (*Chart, error) {
	if len(antigens) != t.NumAntigens() || len(sera) != t.NumSera() {
		return nil, fmt.Errorf("chart.New: %d antigens/%d sera vs table %dx%d: %w",
			len(antigens), len(sera), t.NumAntigens(), t.NumSera(), ErrInvalidData)
	}

	return &Chart{
		info:              info,
		antigens:          antigens,
		sera:              sera,
		titers:            t,
		forcedColumnBases: map[int]float64{},
		projections:       projections.New(),
	}, nil
}

// NumAntigens returns the number of antigens.
func (c *Chart) NumAntigens() int { return len(c.antigens) }

// NumSera returns the number of sera.
func (c *Chart) NumSera() int { return len(c.sera) }

// NumPoints returns antigens+sera, the point count every projection's
// layout must match (spec.md §3 invariant).
func (c *Chart) NumPoints() int { return len(c.antigens) + len(c.sera) }

// Info returns the chart's metadata block.
func (c *Chart) Info() Info { return c.info }

// SetInfo replaces the chart's metadata block.
func (c *Chart) SetInfo(i Info) { c.info = i }

// Antigen returns the antigen at index ag.
func (c *Chart) Antigen(ag int) (Antigen, error) {
	if ag < 0 || ag >= len(c.antigens) {
		return Antigen{}, fmt.Errorf("chart.Antigen(%d): %w", ag, ErrOutOfRange)
	}

	return c.antigens[ag], nil
}

// Serum returns the serum at index sr.
func (c *Chart) Serum(sr int) (Serum, error) {
	if sr < 0 || sr >= len(c.sera) {
		return Serum{}, fmt.Errorf("chart.Serum(%d): %w", sr, ErrOutOfRange)
	}

	return c.sera[sr], nil
}

// Antigens returns a copy of the antigen metadata slice.
func (c *Chart) Antigens() []Antigen {
	out := make([]Antigen, len(c.antigens))
	copy(out, c.antigens)

	return out
}

// Sera returns a copy of the serum metadata slice.
func (c *Chart) Sera() []Serum {
	out := make([]Serum, len(c.sera))
	copy(out, c.sera)

	return out
}

// Titers returns the chart's titer table.
func (c *Chart) Titers() *titers.Titers { return c.titers }

// ForcedColumnBasis returns the chart-level forced override for serum
// sr, if any (spec.md §3 "optional forced ColumnBases, attached to
// sera"), distinct from a single projection's own forced overrides.
func (c *Chart) ForcedColumnBasis(sr int) (float64, bool) {
	v, ok := c.forcedColumnBases[sr]

	return v, ok
}

// SetForcedColumnBasis installs a chart-level forced column basis for
// serum sr.
func (c *Chart) SetForcedColumnBasis(sr int, v float64) { c.forcedColumnBases[sr] = v }

// ForcedColumnBases returns a copy of the chart-level forced overrides,
// keyed by serum index; absent keys have no override. Used by the ace
// codec's "C" key.
func (c *Chart) ForcedColumnBases() map[int]float64 {
	out := make(map[int]float64, len(c.forcedColumnBases))
	for k, v := range c.forcedColumnBases {
		out[k] = v
	}

	return out
}

// Projections returns the chart's sorted projection set.
func (c *Chart) Projections() *projections.Set { return c.projections }

// AddProjection appends p to the chart's projection set. Returns
// ErrInvalidData if p's point count disagrees with the chart's.
func (c *Chart) AddProjection(p *projection.Projection) error {
	if p.NumPoints() != c.NumPoints() {
		return fmt.Errorf("chart.AddProjection: projection has %d points, chart has %d: %w",
			p.NumPoints(), c.NumPoints(), ErrInvalidData)
	}
	c.projections.Insert(p)

	return nil
}

// PlotSpec returns the chart's opaque plot-styling payload.
func (c *Chart) PlotSpec() PlotSpec { return c.plotSpec }

// SetPlotSpec replaces the chart's plot-styling payload.
func (c *Chart) SetPlotSpec(p PlotSpec) { c.plotSpec = p }
