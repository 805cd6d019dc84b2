// internal/writers/designs.go
package writers

import (
	"io"

	"p3io/core/boulder"
	"p3io/internal/designview"
	"p3io/internal/jsonutil"
	"p3io/internal/output"
	"p3io/pkg/api"
)

// DesignItem is one finished design: the typed view plus the raw record
// the engine returned.
type DesignItem struct {
	Design designview.Design
	Out    *boulder.Record
}

type designArgs struct {
	Codec  *boulder.Codec
	Header bool
	In     <-chan DesignItem
}

func drainDesigns(ch <-chan DesignItem) []DesignItem {
	list := make([]DesignItem, 0, 16)
	for it := range ch {
		list = append(list, it)
	}
	return list
}

func init() {
	// Raw engine output as a boulder stream
	RegisterDesign(output.FormatBoulder, func(w io.Writer, payload interface{}) error {
		args := payload.(designArgs)
		for it := range args.In {
			if err := output.WriteBoulder(w, args.Codec, it.Out); err != nil {
				return err
			}
		}
		return nil
	})

	// JSON array of v1 designs
	RegisterDesign(output.FormatJSON, func(w io.Writer, payload interface{}) error {
		list := drainDesigns(payload.(designArgs).In)
		out := make([]api.DesignV1, 0, len(list))
		for _, it := range list {
			out = append(out, designview.ToAPI(it.Design))
		}
		return jsonutil.EncodePretty(w, out)
	})

	// JSONL streaming
	RegisterDesign(output.FormatJSONL, func(w io.Writer, payload interface{}) error {
		args := payload.(designArgs)
		pipe, done := StartDesignJSONLWriter(w, 64)
		for it := range args.In {
			pipe <- it.Design
		}
		close(pipe)
		return <-done
	})

	// TEXT/TSV
	RegisterDesign(output.FormatText, func(w io.Writer, payload interface{}) error {
		args := payload.(designArgs)
		header := args.Header
		for it := range args.In {
			if err := designview.WriteText(w, it.Design, header); err != nil {
				return err
			}
			header = false
		}
		return nil
	})
}

// StartDesignWriter spins up a writer goroutine for finished designs.
func StartDesignWriter(out io.Writer, format string, c *boulder.Codec, header bool, bufSize int) (chan<- DesignItem, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan DesignItem, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteDesign(format, out, designArgs{Codec: c, Header: header, In: in})
		if err != nil {
			drainDesigns(in)
		}
		errCh <- err
	}()
	return in, errCh
}
