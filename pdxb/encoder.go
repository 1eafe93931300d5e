package pdxb

import (
	"bytes"
	"io"

	"github.com/io-pdx/pdxfile"
	"github.com/io-pdx/pdxfile/errors"
	"github.com/rs/zerolog"
)

// Encoder encodes a tree of pdxfile.Node into a stream of bytes.
type Encoder struct {
	// Kind selects the schema that fixes the layout of the output.
	Kind Kind

	// Logger receives a debug event per written token, and a warning per
	// dropped attribute. If nil, nothing is logged.
	Logger *zerolog.Logger
}

func (e Encoder) logger() zerolog.Logger {
	if e.Logger == nil {
		return zerolog.Nop()
	}
	return *e.Logger
}

// Marshal encodes root into a complete byte sequence. Errors in the tree are
// returned as a SchemaError. warn lists attributes that were not written
// because the schema does not declare them.
func (e Encoder) Marshal(root *pdxfile.Node) (b []byte, warn, err error) {
	codec := pdxCodec{Kind: e.Kind, Log: e.logger()}
	model, warn, err := codec.Encode(root)
	if err != nil {
		return nil, warn, err
	}

	var buf bytes.Buffer
	if _, err = model.WriteTo(&buf); err != nil {
		return nil, warn, errors.Wrap(err, "encode format")
	}
	return buf.Bytes(), warn, nil
}

// Encode encodes root and writes it to w. The whole file is encoded before
// anything is written, so nothing reaches w if encoding fails.
func (e Encoder) Encode(w io.Writer, root *pdxfile.Node) (warn, err error) {
	if w == nil {
		return nil, errors.New("nil writer")
	}

	b, warn, err := e.Marshal(root)
	if err != nil {
		return warn, err
	}
	if _, err = w.Write(b); err != nil {
		return warn, errors.Wrap(err, "write asset")
	}
	return warn, nil
}

// Encode encodes root as a document of the given kind using a default
// Encoder. Warnings are discarded.
func Encode(root *pdxfile.Node, kind Kind) (b []byte, err error) {
	b, _, err = Encoder{Kind: kind}.Marshal(root)
	return b, err
}
