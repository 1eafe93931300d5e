package pdxb

import (
	"io"

	"github.com/io-pdx/pdxfile"
	"github.com/io-pdx/pdxfile/errors"
	"github.com/rs/zerolog"
)

// Decoder decodes a stream of bytes into a tree of pdxfile.Node.
type Decoder struct {
	// Logger receives debug events. If nil, nothing is logged.
	Logger *zerolog.Logger
}

func (d Decoder) logger() zerolog.Logger {
	if d.Logger == nil {
		return zerolog.Nop()
	}
	return *d.Logger
}

// Decode reads all data from r and decodes it into a tree according to the
// binary format. The returned root is tagged "File".
func (d Decoder) Decode(r io.Reader) (root *pdxfile.Node, err error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read asset")
	}
	return d.DecodeBytes(b)
}

// DecodeBytes decodes b into a tree according to the binary format. Errors
// in the data are returned as a FormatError. Either a complete tree is
// returned, or none.
func (d Decoder) DecodeBytes(b []byte) (root *pdxfile.Node, err error) {
	log := d.logger()

	model := new(formatModel)
	if err := model.Decode(b); err != nil {
		log.Debug().Err(err).Msg("decode failed")
		return nil, err
	}
	log.Debug().Int("bytes", len(b)).Int("tokens", len(model.Tokens)).Msg("parsed tokens")

	codec := pdxCodec{Log: log}
	return codec.Decode(model)
}

// Decode decodes b into a tree using a default Decoder.
func Decode(b []byte) (root *pdxfile.Node, err error) {
	return Decoder{}.DecodeBytes(b)
}
