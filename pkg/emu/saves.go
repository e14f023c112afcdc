// Package emu stores save states on disk.
package emu

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

// DefaultFolder is the folder save states are kept in when no other
// is given.
const DefaultFolder = "saves"

const saveExt = ".state"

// save file naming convention:
// <folder>/<xxhash of program>/<unix timestamp>.state

// Save represents a save state file.
type Save struct {
	b    []byte    // the save state data
	Path string    // the path to the save file
	Time time.Time // when the state was saved
}

// ProgramID returns the folder name used for the saves of a program.
func ProgramID(program []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(program))
}

// NewSave writes state to a new timestamped slot for program. The
// data is written to a temporary file first and renamed into place,
// so a crash never leaves a partial save.
func NewSave(folder string, program, state []byte) (*Save, error) {
	dir := filepath.Join(folder, ProgramID(program))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create save folder")
	}

	now := time.Now()
	path := filepath.Join(dir, fmt.Sprintf("%d%s", now.Unix(), saveExt))
	// saves within the same second get a later slot
	for n := now.Unix() + 1; fileExists(path); n++ {
		path = filepath.Join(dir, fmt.Sprintf("%d%s", n, saveExt))
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return nil, errors.Wrap(err, "create save file")
	}
	if _, err := f.Write(state); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, errors.Wrap(err, "write save file")
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return nil, err
	}

	return &Save{b: state, Path: path, Time: time.Unix(parseTimestampFromFilename(path), 0)}, nil
}

// LoadSaves loads all save states for the given program. The saves
// are sorted by their timestamp, with the newest save being the
// first in the slice. If no saves exist, an empty slice is returned.
func LoadSaves(folder string, program []byte) ([]*Save, error) {
	dir := filepath.Join(folder, ProgramID(program))

	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return make([]*Save, 0), nil
	} else if err != nil {
		return nil, err
	}

	saves := make([]*Save, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !isFileSaveFile(file.Name()) {
			continue
		}
		path := filepath.Join(dir, file.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		saves = append(saves, &Save{b: b, Path: path, Time: time.Unix(parseTimestampFromFilename(path), 0)})
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Time.After(saves[j].Time)
	})
	return saves, nil
}

// Latest returns the newest save state for program, or nil if there
// are none.
func Latest(folder string, program []byte) (*Save, error) {
	saves, err := LoadSaves(folder, program)
	if err != nil || len(saves) == 0 {
		return nil, err
	}
	return saves[0], nil
}

// Bytes returns the save state data.
func (s *Save) Bytes() []byte {
	return s.b
}

// Remove deletes the save file.
func (s *Save) Remove() error {
	return os.Remove(s.Path)
}

// parseTimestampFromFilename parses the timestamp from the given filename.
// The filename is expected to be in the format of "<timestamp>.state",
// where <timestamp> is the number of seconds since the Unix epoch.
func parseTimestampFromFilename(filename string) int64 {
	base := strings.TrimSuffix(filepath.Base(filename), saveExt)
	n, err := strconv.ParseInt(base, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func isFileSaveFile(filename string) bool {
	return strings.HasSuffix(filename, saveExt) && parseTimestampFromFilename(filename) > 0
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
