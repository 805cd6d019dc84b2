// internal/inputs/records.go
package inputs

import (
	"io"

	"github.com/pkg/errors"

	"p3io/core/boulder"
)

// Records streams boulder records from a list of paths in order. Each
// record is returned raw; callers unwrap as needed.
type Records struct {
	codec *boulder.Codec
	paths []string
	cur   io.ReadCloser
	rd    *boulder.Reader
	name  string
}

func NewRecords(c *boulder.Codec, paths []string) *Records {
	return &Records{codec: c, paths: append([]string(nil), paths...)}
}

// Source names the file the last record came from.
func (r *Records) Source() string { return r.name }

// Next returns the next record across all files, or io.EOF.
func (r *Records) Next() (*boulder.Record, error) {
	for {
		if r.rd == nil {
			if len(r.paths) == 0 {
				return nil, io.EOF
			}
			r.name, r.paths = r.paths[0], r.paths[1:]
			rc, err := Open(r.name)
			if err != nil {
				return nil, err
			}
			r.cur, r.rd = rc, r.codec.NewReader(rc)
		}
		rec, err := r.rd.Next()
		if err == io.EOF {
			cerr := r.cur.Close()
			r.cur, r.rd = nil, nil
			if cerr != nil {
				return nil, errors.Wrapf(cerr, "close %s", r.name)
			}
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, r.name)
		}
		return rec, nil
	}
}

// Close releases the file being read, if any.
func (r *Records) Close() error {
	if r.cur == nil {
		return nil
	}
	err := r.cur.Close()
	r.cur, r.rd = nil, nil
	return err
}
