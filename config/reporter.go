package config

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/gosimple/slug"

	"refx/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter.
func (conf *ReporterConfig) Prepare() (*Report, error) {

	r := &Report{entries: make(map[string]entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

type entry struct {
	path  string // file to be archived; empty for in-memory data
	stamp time.Time
	data  []byte
}

// Report accumulates debug artifacts (zone dumps, extracted text, actual
// configuration) and archives them on Close.
// NOTE: presently not to be used concurrently!
type Report struct {
	entries map[string]entry
	file    *os.File
}

// EntryName builds a safe archive entry path from free-form parts, slugified
// per path element.
func EntryName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := slug.Make(p); s != "" {
			out = append(out, s)
		}
	}
	return path.Join(out...)
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store saves path to a file to be put in the final archive later.
func (r *Report) Store(name, path string) {
	if r == nil {
		// Ignore uninitialized cases to avoid checking in many places. This means no report has been requested.
		return
	}
	if old, exists := r.entries[name]; exists && old.path != path {
		// Somewhere I do not know what I am doing.
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.path, path))
	}
	e := entry{path: path, stamp: time.Now()}
	if p, err := filepath.Abs(path); err == nil {
		e.path = p
	}
	r.entries[name] = e
}

// StoreData saves binary data to be put in the final archive later as a file
// under requested name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		// Ignore uninitialized cases to avoid checking in many places. This means no report has been requested.
		return
	}
	if _, exists := r.entries[name]; exists {
		// version the name to avoid collisions
		name = fmt.Sprintf("%s-%d", name, time.Now().UnixNano())
	}
	r.entries[name] = entry{data: data, stamp: time.Now()}
}

// Close finalizes debug report.
func (r *Report) Close() (retErr error) {
	if r == nil || r.file == nil {
		// Ignore uninitialized cases. This means no report has been requested.
		return nil
	}
	defer func() {
		retErr = errors.Join(retErr, r.file.Close())
	}()
	return r.finalize()
}

// finalize creates the final archive with all previously stored items.
func (r *Report) finalize() error {

	arc := zip.NewWriter(r.file)

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		e := r.entries[name]
		hdr := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: e.stamp}

		if len(e.data) > 0 || e.path == "" {
			w, err := arc.CreateHeader(hdr)
			if err != nil {
				return fmt.Errorf("unable to create report entry %q: %w", name, err)
			}
			if _, err := w.Write(e.data); err != nil {
				return fmt.Errorf("unable to write report entry %q: %w", name, err)
			}
			continue
		}

		in, err := os.Open(e.path)
		if err != nil {
			// stored file disappeared, note it instead of failing the report
			w, werr := arc.CreateHeader(hdr)
			if werr != nil {
				return fmt.Errorf("unable to create report entry %q: %w", name, werr)
			}
			fmt.Fprintf(w, "unable to read %s: %v\n", e.path, err)
			continue
		}
		if fi, err := in.Stat(); err == nil {
			hdr.Modified = fi.ModTime()
		}
		w, err := arc.CreateHeader(hdr)
		if err != nil {
			in.Close()
			return fmt.Errorf("unable to create report entry %q: %w", name, err)
		}
		if _, err := io.Copy(w, in); err != nil {
			in.Close()
			return fmt.Errorf("unable to archive %q: %w", e.path, err)
		}
		in.Close()
	}
	return arc.Close()
}
