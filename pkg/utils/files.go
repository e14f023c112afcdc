package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/pkg/errors"
)

// programExts are the extensions of raw program images. Any other
// file inside an archive is skipped when looking for the program.
var programExts = map[string]bool{
	".ch8": true,
	".c8":  true,
	".rom": true,
}

// ErrNoProgram is returned when an archive holds no program image.
var ErrNoProgram = errors.New("archive contains no program")

// LoadFile loads the given file and performs decompression if
// necessary. Gzip files are unwrapped, and zip and 7z archives yield
// their first program image (or first file, if none is named like
// one). Anything else is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "gzip")
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, errors.Wrap(err, "zip")
		}
		files := make([]archiveFile, 0, len(r.File))
		for _, f := range r.File {
			files = append(files, archiveFile{f.Name, f.FileInfo().IsDir(), f.Open})
		}
		return readArchive(files)
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, errors.Wrap(err, "7z")
		}
		files := make([]archiveFile, 0, len(r.File))
		for _, f := range r.File {
			files = append(files, archiveFile{f.Name, f.FileInfo().IsDir(), f.Open})
		}
		return readArchive(files)
	default:
		return data, nil
	}
}

type archiveFile struct {
	name string
	dir  bool
	open func() (io.ReadCloser, error)
}

// readArchive reads the first program image from files.
func readArchive(files []archiveFile) ([]byte, error) {
	var pick *archiveFile
	for i := range files {
		if files[i].dir {
			continue
		}
		if programExts[strings.ToLower(filepath.Ext(files[i].name))] {
			pick = &files[i]
			break
		}
		if pick == nil {
			pick = &files[i]
		}
	}
	if pick == nil {
		return nil, ErrNoProgram
	}

	rc, err := pick.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
