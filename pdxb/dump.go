package pdxb

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/io-pdx/pdxfile"
	"github.com/io-pdx/pdxfile/errors"
)

// Dump writes to w a readable listing of the tokens decoded from r, each with
// the offset of its lead byte. Unlike Decode, Dump does not build a tree, so
// it describes the stream exactly as it was stored.
func (d Decoder) Dump(w io.Writer, r io.Reader) error {
	if r == nil {
		return errors.New("nil reader")
	}
	if w == nil {
		return errors.New("nil writer")
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read asset")
	}
	model := new(formatModel)
	if err := model.Decode(b); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Magic: %s (% 02X)", BinaryMagic, []byte(BinaryMagic))
	fmt.Fprintf(bw, "\nTokens: %d {", len(model.Tokens))
	for i, tok := range model.Tokens {
		dumpToken(bw, 1, i, tok)
	}
	fmt.Fprint(bw, "\n}")
	return bw.Flush()
}

func dumpToken(w *bufio.Writer, indent, i int, tok token) {
	dumpNewline(w, indent)
	fmt.Fprintf(w, "#%d @%d: ", i, tok.Pos())
	switch tok := tok.(type) {
	case *tokenObject:
		fmt.Fprintf(w, "object depth:%d name:", tok.Depth)
		dumpField(w, indent, tok.Offset+int64(tok.Depth), decodeLatin1(tok.Name), tok.Name)
	case *tokenProperty:
		w.WriteString("property name:")
		// Marker and length byte precede the name.
		dumpField(w, indent, tok.Offset+2, decodeLatin1(tok.Name), tok.Name)
		fmt.Fprintf(w, " type:%q count:%d data@%d ", rune(tok.Type), tok.Count, tok.DataOffset)
		switch v := tok.Value.(type) {
		case pdxfile.ValueString:
			// Length prefix precedes the string bytes.
			dumpField(w, indent, tok.DataOffset+4, decodeLatin1([]byte(v)), []byte(v))
		default:
			w.WriteString(v.String())
		}
	}
}

func dumpNewline(w *bufio.Writer, indent int) {
	w.WriteByte('\n')
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

// dumpField quotes s when it prints cleanly, and otherwise lists the raw
// bytes it was stored as, located at off in the stream.
func dumpField(w *bufio.Writer, indent int, off int64, s string, raw []byte) {
	if strings.IndexFunc(s, func(r rune) bool { return !unicode.IsGraphic(r) }) < 0 {
		w.WriteString(strconv.Quote(s))
		return
	}
	fmt.Fprintf(w, "raw(%d bytes)", len(raw))
	const width = 8
	for j := 0; j < len(raw); j += width {
		row := raw[j:min(j+width, len(raw))]
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "%08x  % -*x  ", off+int64(j), width*3-1, row)
		for _, c := range row {
			if c < ' ' || c > '~' {
				c = '.'
			}
			w.WriteByte(c)
		}
	}
}
