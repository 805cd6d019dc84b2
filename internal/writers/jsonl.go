// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"p3io/core/boulder"
	"p3io/internal/designview"
	"p3io/internal/jsonlutil"
)

// StartRecordJSONLWriter streams each record as one JSON line, keys in
// record order.
func StartRecordJSONLWriter(out io.Writer, bufSize int) (chan<- *boulder.Record, <-chan error) {
	return jsonlutil.Start[*boulder.Record](out, bufSize,
		func(enc *json.Encoder, r *boulder.Record) error {
			return enc.Encode(r)
		},
		IsBrokenPipe,
	)
}

// StartDesignJSONLWriter streams each Design as one JSON line (v1).
func StartDesignJSONLWriter(out io.Writer, bufSize int) (chan<- designview.Design, <-chan error) {
	return jsonlutil.Start[designview.Design](out, bufSize,
		func(enc *json.Encoder, d designview.Design) error {
			return enc.Encode(designview.ToAPI(d))
		},
		IsBrokenPipe,
	)
}
