package source

import "context"

// Static always reports the same temperature. Useful in tests and for
// pinning a demo host to a known value.
type Static struct {
	C float64
}

func NewStatic(c float64) *Static { return &Static{C: c} }

func (s *Static) Read(ctx context.Context) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}
	return Sample{Temperature: s.C, Message: "static"}, nil
}
