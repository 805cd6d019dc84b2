// internal/designview/text.go
package designview

import (
	"fmt"
	"io"
)

// TSVHeader is the header row for the text output of designs.
const TSVHeader = "sequence_id\trank\tleft_seq\tleft_start\tleft_len\tleft_tm\tright_seq\tright_start\tright_len\tright_tm\tinternal_seq\tproduct_size\tpenalty"

// WriteText prints one line per primer pair. Designs without pairs print a
// line with the engine's error or explanation instead.
func WriteText(w io.Writer, d Design, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	if len(d.Pairs) == 0 {
		note := d.Error
		if note == "" {
			note = d.Explain["PRIMER_PAIR_EXPLAIN"]
		}
		if note == "" {
			note = "no pairs"
		}
		_, err := fmt.Fprintf(w, "# %s\t%s\n", d.SequenceID, note)
		return err
	}
	for _, p := range d.Pairs {
		internal := ""
		if p.Internal != nil {
			internal = p.Internal.Sequence
		}
		_, err := fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%.2f\t%s\t%d\t%d\t%.2f\t%s\t%d\t%.4f\n",
			d.SequenceID, p.Rank,
			p.Left.Sequence, p.Left.Start, p.Left.Length, p.Left.Tm,
			p.Right.Sequence, p.Right.Start, p.Right.Length, p.Right.Tm,
			internal, p.ProductSize, p.Penalty,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
