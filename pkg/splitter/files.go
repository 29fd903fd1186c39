package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/like-daffy/midi-drum-part-splitter/pkg/mapping"
	"github.com/like-daffy/midi-drum-part-splitter/pkg/smf"
)

// Result reports what SplitFile did for each part. Writes are
// independent: a failure for one part does not roll back parts already
// saved.
type Result struct {
	// Saved holds the paths written, in mapping part order.
	Saved []string
	// Skipped holds the parts that received no notes and were not written.
	Skipped []string
	// Failed maps part names to their write errors.
	Failed map[string]error
}

// OutputPath returns where the given part of the input file is written:
// the part name, lowercased, appended to the base name before the .mid
// extension, in the input file's directory. song.mid -> song-kick.mid.
// Pre-existing files at that path are overwritten.
func OutputPath(inputPath, part string) string {
	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(dir, fmt.Sprintf("%s-%s.mid", base, strings.ToLower(part)))
}

// SplitFile parses the MIDI file at path, splits it with the given
// mapping and writes one file per non-empty part next to the source.
// Parse errors are fatal and return before anything is written; write
// errors are collected per part in the Result.
func SplitFile(path string, m *mapping.Mapping) (*Result, error) {
	src, err := smf.ParseFile(path)
	if err != nil {
		return nil, err
	}

	res := &Result{Failed: make(map[string]error)}
	for _, part := range Split(src, m) {
		if part.NoteCount == 0 {
			res.Skipped = append(res.Skipped, part.Name)
			continue
		}
		out := OutputPath(path, part.Name)
		data, err := part.File.Encode()
		if err != nil {
			res.Failed[part.Name] = err
			continue
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			res.Failed[part.Name] = fmt.Errorf("failed to write %s: %w", out, err)
			continue
		}
		res.Saved = append(res.Saved, out)
	}
	return res, nil
}
