package pdxb

import (
	"os"
	"path/filepath"

	"github.com/io-pdx/pdxfile"
	"github.com/io-pdx/pdxfile/errors"
)

// ReadFile reads the file at path in one operation and decodes it.
func ReadFile(path string) (root *pdxfile.Node, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	root, err = Decode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return root, nil
}

// WriteFile encodes root and writes it to path in one operation. The data is
// written to a temporary file in the same directory, which replaces path
// only once it is complete, so a failed write never leaves a partial file.
func WriteFile(path string, root *pdxfile.Node, kind Kind) (err error) {
	b, err := Encode(root, kind)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(b); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
