package extract

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"

	"refx/config"
	"refx/layout"
	"refx/refs"
)

// fileResult is one JSON Lines record of a batch run.
type fileResult struct {
	File       string            `json:"file"`
	References *[]refs.Reference `json:"references,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type writer struct {
	out    *bufio.Writer
	pretty bool
	single bool
}

func newWriter(pretty, single bool) *writer {
	return &writer{out: bufio.NewWriter(os.Stdout), pretty: pretty, single: single}
}

func (w *writer) writeResult(file string, references []refs.Reference) error {
	if references == nil {
		references = []refs.Reference{} // an empty list is a result, not an absence
	}
	var v any = fileResult{File: file, References: &references}
	if w.single {
		v = references
	}
	return w.emit(v)
}

func (w *writer) writeError(file string, err error) error {
	if w.single {
		return w.out.Flush()
	}
	return w.emit(fileResult{File: file, Error: err.Error()})
}

func (w *writer) emit(v any) error {
	var (
		data []byte
		err  error
	)
	if w.pretty && w.single {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	if _, err := w.out.Write(data); err != nil {
		return err
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return err
	}
	return w.out.Flush()
}

// reportEntry names a debug-report artifact for one document.
func reportEntry(file, kind string) string {
	return "documents/" + config.EntryName(file) + "/" + kind
}

// zoneDump renders the per-page zone table for the report archive.
func zoneDump(doc *layout.Document) []byte {
	var buf bytes.Buffer
	layout.DumpZones(&buf, doc)
	return buf.Bytes()
}
