// pkg/api/thermo_v1.go
package api

// ThermoResultV1 is the stable JSON schema for one thermodynamic calculation.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ThermoResultV1 struct {
	Calc      string  `json:"calc"` // "tm" | "hairpin" | "homodimer" | "heterodimer" | "end_stability"
	Seq1      string  `json:"seq1"`
	Seq2      string  `json:"seq2,omitempty"`
	Engine    string  `json:"engine"`
	Found     bool    `json:"structure_found"`
	Tm        float64 `json:"tm"`
	DG        float64 `json:"dg"`
	DH        float64 `json:"dh"`
	DS        float64 `json:"ds"`
	Structure string  `json:"ascii_structure,omitempty"`
}
