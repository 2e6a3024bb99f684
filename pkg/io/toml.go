package io

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/due/pkg/envelope"
	"github.com/matzehuels/due/pkg/errors"
	"github.com/matzehuels/due/pkg/geom"
	"github.com/matzehuels/due/pkg/postoffice"
)

// LineSet is an envelope problem: lines over [Lower, Upper].
type LineSet struct {
	Lower int64
	Upper int64
	Lines []geom.Line
}

// SiteSet is a post-office problem: sites on the [1,U]x[1,U] grid.
type SiteSet struct {
	U     int64
	Sites []postoffice.Site
}

type lineFile struct {
	Lower *int64      `toml:"lower,omitempty"`
	Upper int64       `toml:"upper"`
	Lines []lineEntry `toml:"lines"`
}

type lineEntry struct {
	M  int64 `toml:"m"`
	B  int64 `toml:"b"`
	ID *int  `toml:"id,omitempty"`
}

type siteFile struct {
	U     int64       `toml:"u"`
	Sites []siteEntry `toml:"sites"`
}

type siteEntry struct {
	X  int64 `toml:"x"`
	Y  int64 `toml:"y"`
	ID *int  `toml:"id,omitempty"`
}

// ReadLines decodes a TOML line set from r. ReadLines does not close r.
func ReadLines(r io.Reader) (LineSet, error) {
	var data lineFile
	if err := decode(r, &data); err != nil {
		return LineSet{}, err
	}

	set := LineSet{Lower: envelope.DefaultLower, Upper: data.Upper}
	if data.Lower != nil {
		set.Lower = *data.Lower
	}
	set.Lines = make([]geom.Line, len(data.Lines))
	for i, l := range data.Lines {
		set.Lines[i] = geom.Line{M: l.M, B: l.B, ID: idOr(l.ID, i)}
	}
	return set, nil
}

// ReadSites decodes a TOML site set from r. ReadSites does not close r.
func ReadSites(r io.Reader) (SiteSet, error) {
	var data siteFile
	if err := decode(r, &data); err != nil {
		return SiteSet{}, err
	}

	set := SiteSet{U: data.U, Sites: make([]postoffice.Site, len(data.Sites))}
	for i, s := range data.Sites {
		set.Sites[i] = postoffice.Site{X: s.X, Y: s.Y, ID: idOr(s.ID, i)}
	}
	return set, nil
}

// ImportLines reads a TOML line set from the file at path.
func ImportLines(path string) (LineSet, error) {
	var set LineSet
	err := withFile(path, func(r io.Reader) (err error) {
		set, err = ReadLines(r)
		return err
	})
	return set, err
}

// ImportSites reads a TOML site set from the file at path.
func ImportSites(path string) (SiteSet, error) {
	var set SiteSet
	err := withFile(path, func(r io.Reader) (err error) {
		set, err = ReadSites(r)
		return err
	})
	return set, err
}

// WriteLines encodes set as TOML to w.
func WriteLines(set LineSet, w io.Writer) error {
	out := lineFile{Lower: &set.Lower, Upper: set.Upper, Lines: make([]lineEntry, len(set.Lines))}
	for i, l := range set.Lines {
		id := l.ID
		out.Lines[i] = lineEntry{M: l.M, B: l.B, ID: &id}
	}
	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteSites encodes set as TOML to w.
func WriteSites(set SiteSet, w io.Writer) error {
	out := siteFile{U: set.U, Sites: make([]siteEntry, len(set.Sites))}
	for i, s := range set.Sites {
		id := s.ID
		out.Sites[i] = siteEntry{X: s.X, Y: s.Y, ID: &id}
	}
	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLines writes set to a TOML file at path.
func ExportLines(set LineSet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLines(set, f)
}

// ExportSites writes set to a TOML file at path.
func ExportSites(set SiteSet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSites(set, f)
}

func decode(r io.Reader, v any) error {
	md, err := toml.NewDecoder(r).Decode(v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func withFile(path string, read func(io.Reader) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func idOr(id *int, fallback int) int {
	if id != nil {
		return *id
	}
	return fallback
}
