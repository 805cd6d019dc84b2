// internal/writers/records.go
package writers

import (
	"io"

	"p3io/core/boulder"
	"p3io/internal/output"
)

type recordArgs struct {
	Codec *boulder.Codec
	In    <-chan *boulder.Record
}

func drainRecords(ch <-chan *boulder.Record) []*boulder.Record {
	list := make([]*boulder.Record, 0, 16)
	for r := range ch {
		list = append(list, r)
	}
	return list
}

func init() {
	// Boulder stream
	RegisterRecord(output.FormatBoulder, func(w io.Writer, payload interface{}) error {
		args := payload.(recordArgs)
		for r := range args.In {
			if err := output.WriteBoulder(w, args.Codec, r); err != nil {
				drainRecords(args.In)
				return err
			}
		}
		return nil
	})

	// JSON array
	RegisterRecord(output.FormatJSON, func(w io.Writer, payload interface{}) error {
		return output.WriteJSON(w, drainRecords(payload.(recordArgs).In))
	})

	// JSONL streaming
	RegisterRecord(output.FormatJSONL, func(w io.Writer, payload interface{}) error {
		args := payload.(recordArgs)
		pipe, done := StartRecordJSONLWriter(w, 64)
		for r := range args.In {
			pipe <- r
		}
		close(pipe)
		return <-done
	})

	// YAML document stream
	RegisterRecord(output.FormatYAML, func(w io.Writer, payload interface{}) error {
		return output.WriteYAML(w, drainRecords(payload.(recordArgs).In))
	})
}

// StartRecordWriter spins up a writer goroutine for records in format.
// The caller closes the channel and then waits on the error channel.
func StartRecordWriter(out io.Writer, format string, c *boulder.Codec, bufSize int) (chan<- *boulder.Record, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan *boulder.Record, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteRecord(format, out, recordArgs{Codec: c, In: in})
		if err != nil {
			drainRecords(in)
		}
		errCh <- err
	}()
	return in, errCh
}
