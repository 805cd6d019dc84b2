// internal/designapp/source.go
package designapp

import (
	"io"

	"p3io/core/boulder"
	"p3io/internal/args"
	"p3io/internal/inputs"
)

// source yields merged design inputs: first one per --seq file, then every
// record of the input streams. Called from a single goroutine.
type source struct {
	codec   *boulder.Codec
	globals *boulder.Record
	seqs    []string
	noReset bool
	streams *inputs.Records

	acc    args.Accumulator
	seeded bool
	i      int
}

func (s *source) seed() {
	s.acc.Build(s.globals, nil, true)
	s.seeded = true
}

func (s *source) next() (*boulder.Record, error) {
	if !s.seeded {
		s.seed()
	}
	if s.i < len(s.seqs) {
		path := s.seqs[s.i]
		if s.i > 0 && !s.noReset {
			s.seed()
		}
		s.i++
		rec, err := args.LoadFile(path, s.codec)
		if err != nil {
			return nil, err
		}
		return s.acc.Feed(rec), nil
	}
	if s.streams == nil {
		return nil, io.EOF
	}
	rec, err := s.streams.Next()
	if err != nil {
		return nil, err
	}
	return s.acc.Feed(rec), nil
}

func (s *source) close() error {
	if s.streams == nil {
		return nil
	}
	return s.streams.Close()
}
