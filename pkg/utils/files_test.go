package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

var program = []byte{0x60, 0x0A, 0x12, 0x02}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func zipped(t *testing.T, files ...string) []byte {
	t.Helper()
	var b bytes.Buffer
	w := zip.NewWriter(&b)
	for i, name := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Ext(name) == ".ch8" {
			f.Write(program)
		} else {
			f.Write([]byte{byte(i)})
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

func TestLoadFile(t *testing.T) {
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write(program)
	w.Close()

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"raw", "test.ch8", program},
		{"no extension", "test", program},
		{"gzip", "test.ch8.gz", gz.Bytes()},
		{"zip", "test.zip", zipped(t, "test.ch8")},
		{"zip prefers programs", "readme.zip", zipped(t, "README.txt", "games/test.ch8")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFile(writeFile(t, tt.file, tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, program) {
				t.Errorf("expected % x, got % x", program, got)
			}
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.ch8")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := LoadFile(writeFile(t, "bad.gz", program)); err == nil {
		t.Error("expected an error for a corrupt gzip file")
	}
	if _, err := LoadFile(writeFile(t, "empty.zip", zipped(t))); err != ErrNoProgram {
		t.Errorf("expected ErrNoProgram, got %v", err)
	}
}
