package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tristanpoland/DivinePL/internal/source"
)

func TestResolveSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.divine", []byte("let a = 1\nlet bb = 2\n"))

	// "bb" on line 2.
	start, end := fs.Resolve(source.Span{File: id, Start: 14, End: 16})
	if start.Line != 2 || start.Col != 5 {
		t.Errorf("start %d:%d, want 2:5", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 7 {
		t.Errorf("end %d:%d, want 2:7", end.Line, end.Col)
	}
}

func TestResolveFirstLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.divine", []byte("let a = 1"))
	start, _ := fs.Resolve(source.Span{File: id, Start: 0, End: 3})
	if start.Line != 1 || start.Col != 1 {
		t.Errorf("start %d:%d, want 1:1", start.Line, start.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.divine", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{0, ""},
		{9, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "win.divine")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("let a = 1\r\nlet b = 2\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)

	if f.Flags&source.FileHadBOM == 0 {
		t.Error("BOM flag not set")
	}
	if f.Flags&source.FileNormalizedCRLF == 0 {
		t.Error("CRLF flag not set")
	}
	if string(f.Content) != "let a = 1\nlet b = 2\n" {
		t.Errorf("content %q not normalized", f.Content)
	}
	if got := f.GetLine(2); got != "let b = 2" {
		t.Errorf("line 2 = %q", got)
	}
}

func TestAddVirtualNormalizesCRLFAndBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("let a = 1\r\nlet b = 2\r\n")...)

	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("mem.divine", raw))

	if f.Flags&source.FileVirtual == 0 {
		t.Error("virtual flag not set")
	}
	if f.Flags&source.FileHadBOM == 0 {
		t.Error("BOM flag not set")
	}
	if f.Flags&source.FileNormalizedCRLF == 0 {
		t.Error("CRLF flag not set")
	}
	if string(f.Content) != "let a = 1\nlet b = 2\n" {
		t.Errorf("content %q not normalized", f.Content)
	}
}

func TestGetByPath(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("a.divine", []byte("x"))
	if _, ok := fs.GetByPath("a.divine"); !ok {
		t.Error("added file not found by path")
	}
	if _, ok := fs.GetByPath("missing.divine"); ok {
		t.Error("unknown path reported found")
	}
}

func TestSpanCover(t *testing.T) {
	a := source.Span{File: 0, Start: 4, End: 8}
	b := source.Span{File: 0, Start: 10, End: 12}
	c := a.Cover(b)
	if c.Start != 4 || c.End != 12 {
		t.Errorf("cover %v", c)
	}
	if a.Len() != 4 {
		t.Errorf("len %d", a.Len())
	}
	if (source.Span{}).Empty() != true {
		t.Error("zero span should be empty")
	}
}
