package prm

import (
	"bytes"

	prmerr "github.com/Fenex/vangers-tool/core/errors"
	"github.com/Fenex/vangers-tool/core/source"
)

// Signature is the mandatory first content line of every PRM file.
const Signature = "uniVang-ParametersFile_Ver_1"

// File is a loaded PRM file with its signature line removed.
type File struct {
	Name        string
	Fingerprint string // BLAKE3 of the raw bytes
	Lines       []Line
}

// Cursor returns a fresh cursor over the file's lines.
func (f *File) Cursor() *Cursor {
	return NewCursor(f.Lines)
}

// Load reads the named entry from src and applies the signature protocol.
func Load(src source.Source, name string) (*File, error) {
	data, err := source.ReadAll(src, name)
	if err != nil {
		return nil, prmerr.NewOpen(name, err)
	}
	return LoadBytes(name, data)
}

// LoadBytes applies the signature protocol to raw file content.
func LoadBytes(name string, data []byte) (*File, error) {
	lines, err := ReadLines(bytes.NewReader(data))
	if err != nil {
		return nil, prmerr.NewOpen(name, err)
	}
	if len(lines) == 0 {
		return nil, prmerr.NewSignature(name, "", Signature)
	}
	if lines[0].Text != Signature {
		return nil, prmerr.NewSignature(name, lines[0].Text, Signature)
	}
	return &File{
		Name:        name,
		Fingerprint: source.Fingerprint(data),
		Lines:       lines[1:],
	}, nil
}
