// Package archive resolves batch input arguments into the list of PDF files
// to process: plain files, directories walked recursively, and zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/maruel/natural"
)

// WalkFunc is called for every PDF found. The path is either a filesystem
// path or, for archive members, "<archive>::<member>"; open streams the
// file content. If an error is returned, processing stops.
type WalkFunc func(path string, open func() (io.ReadCloser, error)) error

// Walk expands one input argument. Directories are walked recursively
// (symbolic links are not followed) and their files visited in natural
// order; zip archives are visited member by member. Non-PDF files inside
// directories and archives are skipped silently, an explicit non-PDF
// argument is an error.
func Walk(input string, walkFn WalkFunc) error {
	fi, err := os.Stat(input)
	if err != nil {
		return err
	}

	if fi.IsDir() {
		var files []string
		err := filepath.WalkDir(input, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if strings.EqualFold(filepath.Ext(p), ".pdf") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return err
		}
		sort.Sort(natural.StringSlice(files))
		for _, f := range files {
			f := f
			if err := walkFn(f, func() (io.ReadCloser, error) { return os.Open(f) }); err != nil {
				return err
			}
		}
		return nil
	}

	if strings.EqualFold(filepath.Ext(input), ".zip") {
		return walkZip(input, walkFn)
	}

	if err := assurePDF(input); err != nil {
		return err
	}
	return walkFn(input, func() (io.ReadCloser, error) { return os.Open(input) })
}

// walkZip visits PDF members of an archive in natural order. Entries with
// path traversal components ("..") or absolute paths are rejected to prevent
// Zip Slip attacks.
func walkZip(archive string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	var members []*zip.File
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.EqualFold(path.Ext(name), ".pdf") {
			continue
		}
		members = append(members, f)
	}
	sort.Slice(members, func(i, j int) bool {
		return natural.Less(members[i].Name, members[j].Name)
	})

	for _, f := range members {
		f := f
		name := archive + "::" + f.Name
		if err := walkFn(name, func() (io.ReadCloser, error) { return f.Open() }); err != nil {
			return err
		}
	}
	return nil
}

// assurePDF verifies magic bytes so that a mistyped argument fails before
// the decoder does.
func assurePDF(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && n == 0 {
		return fmt.Errorf("unable to read %q: %w", path, err)
	}
	if !filetype.IsType(head[:n], matchers.TypePdf) {
		return fmt.Errorf("%q is not a PDF file", path)
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
