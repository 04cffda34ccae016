package ace

// The wire* types mirror the .ace document's single-letter key schema
// (spec.md §6) and are shared by both the decoder (via json5.Unmarshal)
// and the encoder (via encoding/json.Marshal).

const wireVersion = "acmacs-ace-v1"

type wireDocument struct {
	Version string     `json:"  version"`
	Chart   wireChart  `json:"c"`
	Created string     `json:"?created,omitempty"`
}

type wireChart struct {
	Info              wireInfo               `json:"i"`
	Antigens          []wireAntigen          `json:"a"`
	Sera              []wireSerum            `json:"s"`
	Titers            wireTiters             `json:"t"`
	ForcedColumnBases []*float64             `json:"C,omitempty"`
	Projections       []wireProjection       `json:"P,omitempty"`
	PlotSpec          map[string]interface{} `json:"p,omitempty"`
}

type wireSourceInfo struct {
	Virus      string `json:"v,omitempty"`
	VirusType  string `json:"V,omitempty"`
	Assay      string `json:"A,omitempty"`
	Date       string `json:"D,omitempty"`
	Name       string `json:"N,omitempty"`
	Lab        string `json:"l,omitempty"`
	RbcSpecies string `json:"r,omitempty"`
	Subset     string `json:"s,omitempty"`
}

type wireInfo struct {
	Virus      string           `json:"v,omitempty"`
	VirusType  string           `json:"V,omitempty"`
	Assay      string           `json:"A,omitempty"`
	Date       string           `json:"D,omitempty"`
	Name       string           `json:"N,omitempty"`
	Lab        string           `json:"l,omitempty"`
	RbcSpecies string           `json:"r,omitempty"`
	Subset     string           `json:"s,omitempty"`
	Sources    []wireSourceInfo `json:"S,omitempty"`
}

type wireAntigen struct {
	Name         string   `json:"N"`
	Date         string   `json:"D,omitempty"`
	Passage      string   `json:"P,omitempty"`
	Reassortant  string   `json:"R,omitempty"`
	LabIDs       []string `json:"l,omitempty"`
	SemanticFlag []string `json:"S,omitempty"`
	Annotations  []string `json:"a,omitempty"`
	Clades       []string `json:"c,omitempty"`
	Lineage      string   `json:"L,omitempty"`
	Continent    string   `json:"C,omitempty"`
	AA           string   `json:"A,omitempty"`
	Nuc          string   `json:"B,omitempty"`
}

type wireSerum struct {
	Name               string   `json:"N"`
	Passage            string   `json:"P,omitempty"`
	Reassortant        string   `json:"R,omitempty"`
	SemanticFlag       []string `json:"S,omitempty"`
	Annotations        []string `json:"a,omitempty"`
	Clades             []string `json:"c,omitempty"`
	Lineage            string   `json:"L,omitempty"`
	Continent          string   `json:"C,omitempty"`
	AA                 string   `json:"A,omitempty"`
	Nuc                string   `json:"B,omitempty"`
	SerumID            string   `json:"I,omitempty"`
	SerumSpecies       string   `json:"s,omitempty"`
	HomologousAntigens []int    `json:"h,omitempty"`
}

// wireTiters carries either the dense "l" rows or the sparse "d" rows
// (never both), plus the optional "L" list of sparse source layers.
type wireTiters struct {
	Dense  [][]string             `json:"l,omitempty"`
	Sparse []map[string]string    `json:"d,omitempty"`
	Layers [][]map[string]string `json:"L,omitempty"`
}

type wireProjection struct {
	Layout              [][]float64        `json:"l"`
	Comment             string             `json:"c,omitempty"`
	Stress              *float64           `json:"s,omitempty"`
	MinimumColumnBasis  string             `json:"m,omitempty"`
	ForcedColumnBases   []*float64         `json:"C,omitempty"`
	Transformation      []float64          `json:"t,omitempty"`
	DodgyTiterIsRegular bool               `json:"d,omitempty"`
	StressDiffToStop    float64            `json:"e,omitempty"`
	Unmovable           []int              `json:"U,omitempty"`
	Disconnected        []int              `json:"D,omitempty"`
	UnmovableLastDim    []int              `json:"u,omitempty"`
	AvidityAdjusts      map[string]float64 `json:"f,omitempty"`
}
