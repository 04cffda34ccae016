package ace

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/flynn/json5"

	"github.com/katalvlaran/cartograph/chart"
	"github.com/katalvlaran/cartograph/columnbasis"
	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/projection"
	"github.com/katalvlaran/cartograph/titer"
	"github.com/katalvlaran/cartograph/titers"
)

// stripHashComments removes "#" line comments from a JSON5 byte stream
// (spec.md §6: "line-comments starting with # are accepted ... and
// removed before JSON parsing"). It is string-literal-aware so a "#"
// inside a quoted value is left untouched; json5.Unmarshal already
// handles "//"/"/* */" comments and trailing commas on its own.
func stripHashComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false
	for i := 0; i < len(data); i++ {
		b := data[i]
		if inString {
			out = append(out, b)
			if escaped {
				escaped = false
			} else if b == '\\' {
				escaped = true
			} else if b == '"' {
				inString = false
			}
			continue
		}
		if b == '"' {
			inString = true
			out = append(out, b)
			continue
		}
		if b == '#' {
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out = append(out, '\n')
			}
			continue
		}
		out = append(out, b)
	}

	return out
}

// Read decodes an .ace document from r into a Chart.
func Read(r io.Reader) (*chart.Chart, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ace.Read: %w", err)
	}

	return decode(data)
}

// Load opens path and decodes it as an .ace document.
func Load(path string) (*chart.Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ace.Load: %w", err)
	}
	defer f.Close()

	return Read(f)
}

func decode(data []byte) (*chart.Chart, error) {
	data = stripHashComments(data)

	var doc wireDocument
	if err := json5.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ace.decode: %w", err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("ace.decode: %w", ErrInvalidDocument)
	}
	if doc.Version != wireVersion {
		return nil, fmt.Errorf("ace.decode: %q: %w", doc.Version, ErrUnsupportedVersion)
	}

	antigens, err := decodeAntigens(doc.Chart.Antigens)
	if err != nil {
		return nil, err
	}
	sera, err := decodeSera(doc.Chart.Sera)
	if err != nil {
		return nil, err
	}

	t, err := decodeTiters(doc.Chart.Titers, len(antigens), len(sera))
	if err != nil {
		return nil, err
	}

	c, err := chart.New(decodeInfo(doc.Chart.Info), antigens, sera, t)
	if err != nil {
		return nil, fmt.Errorf("ace.decode: %w", err)
	}

	for sr, v := range decodeForcedColumnBases(doc.Chart.ForcedColumnBases) {
		c.SetForcedColumnBasis(sr, v)
	}

	for _, wp := range doc.Chart.Projections {
		p, err := decodeProjection(wp, len(antigens)+len(sera))
		if err != nil {
			return nil, err
		}
		if err := c.AddProjection(p); err != nil {
			return nil, fmt.Errorf("ace.decode: %w", err)
		}
	}

	if doc.Chart.PlotSpec != nil {
		c.SetPlotSpec(chart.PlotSpec{Raw: doc.Chart.PlotSpec})
	}

	return c, nil
}

func decodeInfo(w wireInfo) chart.Info {
	info := chart.Info{
		Virus:      w.Virus,
		VirusType:  w.VirusType,
		Assay:      w.Assay,
		Date:       w.Date,
		Name:       w.Name,
		Lab:        w.Lab,
		RbcSpecies: w.RbcSpecies,
		Subset:     w.Subset,
	}
	for _, s := range w.Sources {
		info.Sources = append(info.Sources, chart.SourceInfo{
			Virus:      s.Virus,
			VirusType:  s.VirusType,
			Assay:      s.Assay,
			Date:       s.Date,
			Name:       s.Name,
			Lab:        s.Lab,
			RbcSpecies: s.RbcSpecies,
			Subset:     s.Subset,
		})
	}

	return info
}

func decodeAntigens(ws []wireAntigen) ([]chart.Antigen, error) {
	out := make([]chart.Antigen, len(ws))
	for i, w := range ws {
		out[i] = chart.Antigen{
			Name:         w.Name,
			Date:         w.Date,
			Passage:      w.Passage,
			Reassortant:  w.Reassortant,
			LabIDs:       w.LabIDs,
			SemanticFlag: w.SemanticFlag,
			Annotations:  w.Annotations,
			Clades:       w.Clades,
			Lineage:      w.Lineage,
			Continent:    w.Continent,
			AA:           w.AA,
			Nuc:          w.Nuc,
		}
	}

	return out, nil
}

func decodeSera(ws []wireSerum) ([]chart.Serum, error) {
	out := make([]chart.Serum, len(ws))
	for i, w := range ws {
		out[i] = chart.Serum{
			Name:               w.Name,
			Passage:            w.Passage,
			Reassortant:        w.Reassortant,
			SemanticFlag:       w.SemanticFlag,
			Annotations:        w.Annotations,
			Clades:             w.Clades,
			Lineage:            w.Lineage,
			Continent:          w.Continent,
			AA:                 w.AA,
			Nuc:                w.Nuc,
			SerumID:            w.SerumID,
			SerumSpecies:       w.SerumSpecies,
			HomologousAntigens: w.HomologousAntigens,
		}
	}

	return out, nil
}

// decodeTiters builds the main table from "l"/"d", then stacks any "L"
// source layers on top. The main table must be fully populated via
// SetTiter before any AddLayer call, since titers.Titers refuses
// SetTiter once it carries layers (spec.md §4.2).
func decodeTiters(w wireTiters, nAntigens, nSera int) (*titers.Titers, error) {
	t, err := titers.New(nAntigens, nSera)
	if err != nil {
		return nil, fmt.Errorf("ace.decodeTiters: %w", err)
	}

	switch {
	case w.Dense != nil:
		if err := fillDense(t, w.Dense); err != nil {
			return nil, err
		}
	case w.Sparse != nil:
		if err := fillSparse(t, w.Sparse); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("ace.decodeTiters: %w", ErrMalformedTiters)
	}

	for _, layerRows := range w.Layers {
		layer, err := titers.New(nAntigens, nSera)
		if err != nil {
			return nil, fmt.Errorf("ace.decodeTiters: %w", err)
		}
		if err := fillSparse(layer, layerRows); err != nil {
			return nil, err
		}
		if err := t.AddLayer(layer); err != nil {
			return nil, fmt.Errorf("ace.decodeTiters: %w", err)
		}
	}

	return t, nil
}

func fillDense(t *titers.Titers, rows [][]string) error {
	if len(rows) != t.NumAntigens() {
		return fmt.Errorf("ace.decodeTiters: %d dense rows vs %d antigens: %w",
			len(rows), t.NumAntigens(), ErrMalformedTiters)
	}
	for ag, row := range rows {
		if len(row) != t.NumSera() {
			return fmt.Errorf("ace.decodeTiters: row %d has %d cells vs %d sera: %w",
				ag, len(row), t.NumSera(), ErrMalformedTiters)
		}
		for sr, s := range row {
			tt, err := titer.FromStr(s)
			if err != nil {
				return fmt.Errorf("ace.decodeTiters: %w", err)
			}
			if err := t.SetTiter(ag, sr, tt); err != nil {
				return fmt.Errorf("ace.decodeTiters: %w", err)
			}
		}
	}

	return nil
}

func fillSparse(t *titers.Titers, rows []map[string]string) error {
	if len(rows) != t.NumAntigens() {
		return fmt.Errorf("ace.decodeTiters: %d sparse rows vs %d antigens: %w",
			len(rows), t.NumAntigens(), ErrMalformedTiters)
	}
	for ag, row := range rows {
		for srStr, s := range row {
			sr, err := strconv.Atoi(srStr)
			if err != nil {
				return fmt.Errorf("ace.decodeTiters: serum key %q: %w", srStr, ErrMalformedTiters)
			}
			tt, err := titer.FromStr(s)
			if err != nil {
				return fmt.Errorf("ace.decodeTiters: %w", err)
			}
			if err := t.SetTiter(ag, sr, tt); err != nil {
				return fmt.Errorf("ace.decodeTiters: %w", err)
			}
		}
	}

	return nil
}

func decodeForcedColumnBases(ws []*float64) map[int]float64 {
	out := map[int]float64{}
	for sr, v := range ws {
		if v != nil {
			out[sr] = *v
		}
	}

	return out
}

// decodeProjection rebuilds a Projection from its wire form. Layout
// rows shorter than the widest row (the "truncate at first NaN"
// export convention) leave their remaining dimensions NaN, which is
// layout.New's default state.
func decodeProjection(w wireProjection, numPoints int) (*projection.Projection, error) {
	numDims := 0
	for _, row := range w.Layout {
		if len(row) > numDims {
			numDims = len(row)
		}
	}
	if numDims == 0 {
		numDims = 1
	}

	mcb := 0.0
	if w.MinimumColumnBasis != "" {
		v, err := columnbasis.ParseMinimumColumnBasis(w.MinimumColumnBasis)
		if err != nil {
			return nil, fmt.Errorf("ace.decodeProjection: %w", err)
		}
		mcb = v
	}

	p, err := projection.New(numPoints, numDims, mcb)
	if err != nil {
		return nil, fmt.Errorf("ace.decodeProjection: %w", err)
	}

	if err := p.Modify(func(l *layout.Layout) error {
		for pt, row := range w.Layout {
			for d, v := range row {
				if err := l.Set(pt, d, v); err != nil {
					return err
				}
			}
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("ace.decodeProjection: %w", err)
	}

	if w.Transformation != nil {
		tr, err := projection.TransformationFromFlat(w.Transformation, numDims)
		if err != nil {
			return nil, fmt.Errorf("ace.decodeProjection: %w", err)
		}
		p.SetTransformation(tr)
	}

	for sr, v := range decodeForcedColumnBases(w.ForcedColumnBases) {
		p.SetForcedColumnBasis(sr, v)
	}
	for _, pt := range w.Unmovable {
		p.SetUnmovable(pt, true)
	}
	for _, pt := range w.Disconnected {
		p.SetDisconnected(pt, true)
	}
	for _, pt := range w.UnmovableLastDim {
		p.SetUnmovableLastDim(pt, true)
	}
	for ptStr, v := range w.AvidityAdjusts {
		pt, err := strconv.Atoi(ptStr)
		if err != nil {
			return nil, fmt.Errorf("ace.decodeProjection: avidity key %q: %w", ptStr, ErrMalformedTiters)
		}
		p.SetAvidityAdjust(pt, v)
	}

	p.SetDodgyTiterIsRegular(w.DodgyTiterIsRegular)
	p.SetComment(w.Comment)

	if w.Stress != nil && !math.IsNaN(*w.Stress) && !math.IsInf(*w.Stress, 0) {
		p.SetFinalStress(*w.Stress)
	}

	return p, nil
}
