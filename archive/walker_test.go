package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// minimal but magic-correct PDF stub
var pdfStub = []byte("%PDF-1.4\n%%EOF\n")

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func collectNames(t *testing.T, input string) []string {
	t.Helper()
	var names []string
	err := Walk(input, func(path string, open func() (io.ReadCloser, error)) error {
		rc, err := open()
		if err != nil {
			return err
		}
		defer rc.Close()
		if _, err := io.ReadAll(rc); err != nil {
			return err
		}
		names = append(names, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk(%q) error = %v", input, err)
	}
	return names
}

func TestWalkSingleFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "paper.pdf", pdfStub)

	names := collectNames(t, p)
	if len(names) != 1 || names[0] != p {
		t.Fatalf("names = %v", names)
	}
}

func TestWalkRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "paper.pdf", []byte("just text, wrong magic"))

	err := Walk(p, func(string, func() (io.ReadCloser, error)) error { return nil })
	if err == nil {
		t.Fatal("Walk() accepted a non-PDF file")
	}
}

func TestWalkDirectoryNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "paper10.pdf", pdfStub)
	writeFile(t, dir, "paper2.pdf", pdfStub)
	writeFile(t, dir, "sub/paper1.pdf", pdfStub)
	writeFile(t, dir, "notes.txt", []byte("skip me"))

	names := collectNames(t, dir)
	if len(names) != 3 {
		t.Fatalf("names = %v, want 3 PDFs", names)
	}
	// natural order: paper2 before paper10
	i2, i10 := -1, -1
	for i, n := range names {
		switch filepath.Base(n) {
		case "paper2.pdf":
			i2 = i
		case "paper10.pdf":
			i10 = i
		}
	}
	if i2 == -1 || i10 == -1 || i2 > i10 {
		t.Errorf("natural order violated: %v", names)
	}
}

func TestWalkZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "batch.zip")

	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, name := range []string{"a.pdf", "b.txt", "sub/c.pdf"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(pdfStub); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	names := collectNames(t, zipPath)
	if len(names) != 2 {
		t.Fatalf("names = %v, want 2 PDF members", names)
	}
	for _, n := range names {
		if n != zipPath+"::a.pdf" && n != zipPath+"::sub/c.pdf" {
			t.Errorf("unexpected member %q", n)
		}
	}
}

func TestWalkZipRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")

	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("../escape.pdf")
	if err != nil {
		t.Fatal(err)
	}
	w.Write(pdfStub)
	zw.Close()
	f.Close()

	err = Walk(zipPath, func(string, func() (io.ReadCloser, error)) error { return nil })
	if err == nil {
		t.Fatal("Walk() accepted a zip with path traversal")
	}
}
