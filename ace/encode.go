package ace

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/katalvlaran/cartograph/chart"
	"github.com/katalvlaran/cartograph/columnbasis"
	"github.com/katalvlaran/cartograph/projection"
)

// stressDecimals is the precision cc/chart's exporter rounds a
// projection's final stress to before writing it (spec.md §6 "s
// stress (to 8 decimals)").
const stressDecimals = 8

// Write encodes c as a canonical .ace document to w.
func Write(w io.Writer, c *chart.Chart) error {
	doc := encode(c)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("ace.Write: %w", err)
	}

	return nil
}

// Save encodes c as an .ace document at path, creating or truncating it.
func Save(path string, c *chart.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ace.Save: %w", err)
	}
	defer f.Close()

	return Write(f, c)
}

func encode(c *chart.Chart) wireDocument {
	return wireDocument{
		Version: wireVersion,
		Chart: wireChart{
			Info:              encodeInfo(c.Info()),
			Antigens:          encodeAntigens(c.Antigens()),
			Sera:              encodeSera(c.Sera()),
			Titers:            encodeTiters(c),
			ForcedColumnBases: encodeForcedColumnBases(c.ForcedColumnBases(), c.NumSera()),
			Projections:       encodeProjections(c),
			PlotSpec:          encodePlotSpec(c.PlotSpec()),
		},
	}
}

func encodeInfo(info chart.Info) wireInfo {
	w := wireInfo{
		Virus:      info.Virus,
		VirusType:  info.VirusType,
		Assay:      info.Assay,
		Date:       info.Date,
		Name:       info.Name,
		Lab:        info.Lab,
		RbcSpecies: info.RbcSpecies,
		Subset:     info.Subset,
	}
	for _, s := range info.Sources {
		w.Sources = append(w.Sources, wireSourceInfo{
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

	return w
}

func encodeAntigens(ags []chart.Antigen) []wireAntigen {
	out := make([]wireAntigen, len(ags))
	for i, a := range ags {
		out[i] = wireAntigen{
			Name:         a.Name,
			Date:         a.Date,
			Passage:      a.Passage,
			Reassortant:  a.Reassortant,
			LabIDs:       a.LabIDs,
			SemanticFlag: a.SemanticFlag,
			Annotations:  a.Annotations,
			Clades:       a.Clades,
			Lineage:      a.Lineage,
			Continent:    a.Continent,
			AA:           a.AA,
			Nuc:          a.Nuc,
		}
	}

	return out
}

func encodeSera(srs []chart.Serum) []wireSerum {
	out := make([]wireSerum, len(srs))
	for i, s := range srs {
		out[i] = wireSerum{
			Name:               s.Name,
			Passage:            s.Passage,
			Reassortant:        s.Reassortant,
			SemanticFlag:       s.SemanticFlag,
			Annotations:        s.Annotations,
			Clades:             s.Clades,
			Lineage:            s.Lineage,
			Continent:          s.Continent,
			AA:                 s.AA,
			Nuc:                s.Nuc,
			SerumID:            s.SerumID,
			SerumSpecies:       s.SerumSpecies,
			HomologousAntigens: s.HomologousAntigens,
		}
	}

	return out
}

// encodeTiters always emits the dense "l" form: the main table's
// internal dense/sparse storage is an implementation detail (spec.md
// §3), and cc/chart itself chooses the wire representation by
// occupancy independently of in-memory layout. Source layers, if any,
// are always sparse, matching how they are merged (spec.md §4.2).
func encodeTiters(c *chart.Chart) wireTiters {
	t := c.Titers()
	rows := make([][]string, t.NumAntigens())
	for ag := 0; ag < t.NumAntigens(); ag++ {
		row := make([]string, t.NumSera())
		for sr := 0; sr < t.NumSera(); sr++ {
			tt, _ := t.Titer(ag, sr)
			row[sr] = tt.String()
		}
		rows[ag] = row
	}

	w := wireTiters{Dense: rows}
	for k := 0; k < t.NumberOfLayers(); k++ {
		pairs, err := t.AntigensSeraOfLayer(k)
		if err != nil {
			continue
		}
		layer := make([]map[string]string, t.NumAntigens())
		for _, pair := range pairs {
			ag, sr := pair[0], pair[1]
			tt, err := t.LayerTiter(k, ag, sr)
			if err != nil {
				continue
			}
			if layer[ag] == nil {
				layer[ag] = map[string]string{}
			}
			layer[ag][strconv.Itoa(sr)] = tt.String()
		}
		w.Layers = append(w.Layers, layer)
	}

	return w
}

func encodeForcedColumnBases(forced map[int]float64, n int) []*float64 {
	if len(forced) == 0 {
		return nil
	}
	out := make([]*float64, n)
	for sr, v := range forced {
		if sr >= 0 && sr < n {
			v := v
			out[sr] = &v
		}
	}

	return out
}

func encodeProjections(c *chart.Chart) []wireProjection {
	all := c.Projections().All()
	out := make([]wireProjection, len(all))
	for i, p := range all {
		out[i] = encodeProjection(p, c.NumSera())
	}

	return out
}

func encodeProjection(p *projection.Projection, nSera int) wireProjection {
	layout := p.Layout()
	rows := make([][]float64, layout.NumPoints())
	for pt := 0; pt < layout.NumPoints(); pt++ {
		row := make([]float64, 0, layout.NumDims())
		for d := 0; d < layout.NumDims(); d++ {
			v, _ := layout.At(pt, d)
			if math.IsNaN(v) {
				break
			}
			row = append(row, v)
		}
		rows[pt] = row
	}

	w := wireProjection{
		Layout:              rows,
		Comment:             p.Comment(),
		MinimumColumnBasis:  columnbasis.FormatMinimumColumnBasis(p.MinimumColumnBasis()),
		DodgyTiterIsRegular: p.DodgyTiterIsRegular(),
	}

	if stress, err := p.FinalStress(); err == nil && !math.IsNaN(stress) && !math.IsInf(stress, 0) && stress >= 0 {
		rounded := roundTo(stress, stressDecimals)
		w.Stress = &rounded
	}

	identity := projection.Identity(layout.NumDims())
	if flat := p.Transformation().Flatten(); !flatEqual(flat, identity.Flatten()) {
		w.Transformation = flat
	}

	forced := map[int]float64{}
	for sr := 0; sr < nSera; sr++ {
		if v, ok := p.ForcedColumnBasis(sr); ok {
			forced[sr] = v
		}
	}
	w.ForcedColumnBases = encodeForcedColumnBases(forced, nSera)

	for pt := range p.UnmovablePoints() {
		w.Unmovable = append(w.Unmovable, pt)
	}
	for pt := range p.DisconnectedPoints() {
		w.Disconnected = append(w.Disconnected, pt)
	}
	for pt := range p.UnmovableInTheLastDimensionPoints() {
		w.UnmovableLastDim = append(w.UnmovableLastDim, pt)
	}

	avidity := map[string]float64{}
	for pt := 0; pt < layout.NumPoints(); pt++ {
		if v := p.AvidityAdjust(pt); v != 1.0 {
			avidity[strconv.Itoa(pt)] = v
		}
	}
	if len(avidity) > 0 {
		w.AvidityAdjusts = avidity
	}

	return w
}

func encodePlotSpec(p chart.PlotSpec) map[string]interface{} {
	if p.IsEmpty() {
		return nil
	}

	return p.Raw
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))

	return math.Round(v*scale) / scale
}

func flatEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
