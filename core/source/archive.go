package source

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/ulikunitz/xz"
)

// CompressionType specifies the compression of a PRM bundle archive.
type CompressionType string

const (
	// CompressionNone is a plain tar stream.
	CompressionNone CompressionType = "none"
	// CompressionGzip is a gzip-compressed tar stream.
	CompressionGzip CompressionType = "gzip"
	// CompressionXZ is an xz-compressed tar stream.
	CompressionXZ CompressionType = "xz"
)

// Injectable for testing
var (
	gzipNewReader = gzip.NewReader
	xzNewReader   = xz.NewReader
)

// DetectCompression inspects the leading magic bytes of an archive.
func DetectCompression(magic []byte) CompressionType {
	// gzip magic (1f 8b)
	if len(magic) >= 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return CompressionGzip
	}

	// XZ magic (fd 37 7a 58 5a 00)
	if len(magic) >= 6 && magic[0] == 0xfd && magic[1] == 0x37 && magic[2] == 0x7a &&
		magic[3] == 0x58 && magic[4] == 0x5a && magic[5] == 0x00 {
		return CompressionXZ
	}

	return CompressionNone
}

// OpenArchive reads a tar, tar.gz or tar.xz bundle into memory. Entries are
// keyed by their base name; directory structure inside the archive is ignored.
func OpenArchive(archivePath string) (Source, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	files, err := readArchive(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive %s: %w", archivePath, err)
	}
	return &memorySource{files: files, desc: archivePath}, nil
}

// ReadArchive is OpenArchive over an already opened stream.
func ReadArchive(r io.Reader, desc string) (Source, error) {
	files, err := readArchive(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive %s: %w", desc, err)
	}
	return &memorySource{files: files, desc: desc}, nil
}

func readArchive(r io.Reader) (map[string][]byte, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read magic bytes: %w", err)
	}

	var stream io.Reader = br
	switch DetectCompression(magic) {
	case CompressionGzip:
		gzReader, err := gzipNewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		stream = gzReader
	case CompressionXZ:
		xzReader, err := xzNewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		stream = xzReader
	}

	files := make(map[string][]byte)
	tarReader := tar.NewReader(stream)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar header: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		cleanPath := path.Clean(header.Name)
		if strings.HasPrefix(cleanPath, "..") {
			continue
		}

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, tarReader); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", header.Name, err)
		}
		files[path.Base(cleanPath)] = buf.Bytes()
	}
	return files, nil
}
