package render

import (
	"encoding/json"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/view"
)

// JSONOption configures JSON rendering.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
}

// WithIndent pretty-prints the output for humans.
func WithIndent() JSONOption {
	return func(r *jsonRenderer) { r.indent = true }
}

// RenderJSON serializes a frame as JSON. This is the same shape the server
// streams to interactive clients, so a saved frame can be replayed against
// the browser shell.
func RenderJSON(f *view.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var (
		data []byte
		err  error
	)
	if r.indent {
		data, err = json.MarshalIndent(f, "", "  ")
	} else {
		data, err = json.Marshal(f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode frame")
	}
	return data, nil
}
