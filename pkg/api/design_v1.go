// pkg/api/design_v1.go
package api

// OligoV1 is one primer or internal oligo of a designed pair.
type OligoV1 struct {
	Sequence  string  `json:"sequence"`
	Start     int     `json:"start"`
	Length    int     `json:"length"`
	Tm        float64 `json:"tm"`
	GCPercent float64 `json:"gc_percent"`
	Penalty   float64 `json:"penalty"`
	SelfAny   float64 `json:"self_any_th,omitempty"`
	SelfEnd   float64 `json:"self_end_th,omitempty"`
	Hairpin   float64 `json:"hairpin_th,omitempty"`
	EndStab   float64 `json:"end_stability,omitempty"`
}

// PrimerPairV1 is the stable schema for one ranked primer pair.
type PrimerPairV1 struct {
	Rank        int      `json:"rank"`
	Left        OligoV1  `json:"left"`
	Right       OligoV1  `json:"right"`
	Internal    *OligoV1 `json:"internal,omitempty"`
	ProductSize int      `json:"product_size"`
	Penalty     float64  `json:"penalty"`
	ComplAny    float64  `json:"compl_any_th,omitempty"`
	ComplEnd    float64  `json:"compl_end_th,omitempty"`
}

// DesignV1 is the stable schema for one design result.
type DesignV1 struct {
	SequenceID string            `json:"sequence_id"`
	Pairs      []PrimerPairV1    `json:"pairs"`
	Explain    map[string]string `json:"explain,omitempty"`
	Warning    string            `json:"warning,omitempty"`
	Error      string            `json:"error,omitempty"`
}
