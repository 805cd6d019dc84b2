// internal/output/thermo.go
package output

import (
	"fmt"
	"io"
	"strings"

	"p3io/internal/engine"
	"p3io/internal/jsonutil"
	"p3io/pkg/api"
)

// ThermoRow is one thermodynamic calculation with its inputs.
type ThermoRow struct {
	Calc   string
	Seq1   string
	Seq2   string
	Engine string
	Result engine.ThermoResult
}

// ToAPIThermo converts a row to the stable wire schema (v1).
func ToAPIThermo(r ThermoRow) api.ThermoResultV1 {
	return api.ThermoResultV1{
		Calc:      r.Calc,
		Seq1:      r.Seq1,
		Seq2:      r.Seq2,
		Engine:    r.Engine,
		Found:     r.Result.Found,
		Tm:        r.Result.Tm,
		DG:        r.Result.DG,
		DH:        r.Result.DH,
		DS:        r.Result.DS,
		Structure: r.Result.Structure,
	}
}

// WriteThermoJSON writes a single pretty JSON object.
func WriteThermoJSON(w io.Writer, r ThermoRow) error {
	return jsonutil.EncodePretty(w, ToAPIThermo(r))
}

// WriteThermoText prints a melting temperature alone, or the ntthal-style
// summary line followed by the structure, if any.
func WriteThermoText(w io.Writer, r ThermoRow) error {
	if r.Calc == "tm" {
		_, err := fmt.Fprintf(w, "%.2f\n", r.Result.Tm)
		return err
	}
	if !r.Result.Found {
		_, err := fmt.Fprintln(w, "No secondary structure could be calculated")
		return err
	}
	res := r.Result
	if _, err := fmt.Fprintf(w, "dS = %g\tdH = %g\tdG = %g\tt = %g\n", res.DS, res.DH, res.DG, res.Tm); err != nil {
		return err
	}
	if s := strings.TrimRight(res.Structure, "\n"); s != "" {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	return nil
}
