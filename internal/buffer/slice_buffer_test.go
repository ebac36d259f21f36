package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/tidemark/internal/types"
)

func newBuffer(text string) *SliceBuffer {
	sb := NewSliceBuffer()
	sb.SetText(text)
	sb.SetModified(false)
	return sb
}

func TestInsert(t *testing.T) {
	cases := []struct {
		name string
		text string
		pos  types.Position
		ins  string
		want string
	}{
		{"middle", "hello", types.Position{Line: 0, Col: 2}, "XY", "heXYllo"},
		{"newline", "hello", types.Position{Line: 0, Col: 2}, "\n", "he\nllo"},
		{"multi line", "ab\ncd", types.Position{Line: 1, Col: 1}, "1\n2\n3", "ab\nc1\n2\n3d"},
		{"clamped column", "ab", types.Position{Line: 0, Col: 9}, "!", "ab!"},
		{"clamped line", "ab\ncd", types.Position{Line: 7, Col: 0}, "!", "ab\n!cd"},
		{"unicode", "héllo", types.Position{Line: 0, Col: 2}, "-", "hé-llo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sb := newBuffer(tc.text)
			if _, err := sb.Insert(tc.pos, []byte(tc.ins)); err != nil {
				t.Fatalf("Insert: %v", err)
			}
			if got := sb.Text(); got != tc.want {
				t.Fatalf("text = %q, want %q", got, tc.want)
			}
			if !sb.IsModified() {
				t.Fatal("buffer not marked modified")
			}
		})
	}
}

func TestInsertEditInfo(t *testing.T) {
	sb := newBuffer("ab\ncd")
	info, err := sb.Insert(types.Position{Line: 1, Col: 1}, []byte("x\nyz"))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if info.StartIndex != 4 || info.OldEndIndex != 4 || info.NewEndIndex != 8 {
		t.Fatalf("indexes = %d %d %d", info.StartIndex, info.OldEndIndex, info.NewEndIndex)
	}
	if info.NewEndPosition.Row != 2 || info.NewEndPosition.Column != 2 {
		t.Fatalf("new end = %+v", info.NewEndPosition)
	}
}

func TestDelete(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		start, end types.Position
		want       string
	}{
		{"within line", "hello", types.Position{Line: 0, Col: 1}, types.Position{Line: 0, Col: 3}, "hlo"},
		{"join lines", "ab\ncd", types.Position{Line: 0, Col: 2}, types.Position{Line: 1, Col: 0}, "abcd"},
		{"span lines", "ab\ncd\nef", types.Position{Line: 0, Col: 1}, types.Position{Line: 2, Col: 1}, "af"},
		{"reversed", "hello", types.Position{Line: 0, Col: 3}, types.Position{Line: 0, Col: 1}, "hlo"},
		{"everything", "ab\ncd", types.Position{Line: 0, Col: 0}, types.Position{Line: 1, Col: 2}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sb := newBuffer(tc.text)
			if _, err := sb.Delete(tc.start, tc.end); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if got := sb.Text(); got != tc.want {
				t.Fatalf("text = %q, want %q", got, tc.want)
			}
			if sb.LineCount() < 1 {
				t.Fatal("buffer lost its last line")
			}
		})
	}
}

func TestDeleteEmptyRange(t *testing.T) {
	sb := newBuffer("abc")
	info, err := sb.Delete(types.Position{Line: 0, Col: 1}, types.Position{Line: 0, Col: 1})
	if err != nil || info != (types.EditInfo{}) {
		t.Fatalf("empty delete = %+v %v", info, err)
	}
	if sb.IsModified() {
		t.Fatal("empty delete marked buffer modified")
	}
}

func TestReplace(t *testing.T) {
	sb := newBuffer("say hi\nbye")
	info, err := sb.Replace(types.Position{Line: 0, Col: 4}, types.Position{Line: 1, Col: 0}, []byte("**hi**\n"))
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := sb.Text(); got != "say **hi**\nbye" {
		t.Fatalf("text = %q", got)
	}
	if info.StartIndex != 4 || info.OldEndIndex != 7 || info.NewEndIndex != 11 {
		t.Fatalf("indexes = %d %d %d", info.StartIndex, info.OldEndIndex, info.NewEndIndex)
	}
}

func TestOffsets(t *testing.T) {
	sb := newBuffer("héllo\n\nwörld")
	cases := []struct {
		offset int
		pos    types.Position
	}{
		{0, types.Position{Line: 0, Col: 0}},
		{5, types.Position{Line: 0, Col: 5}},
		{6, types.Position{Line: 1, Col: 0}},
		{7, types.Position{Line: 2, Col: 0}},
		{12, types.Position{Line: 2, Col: 5}},
	}
	for _, tc := range cases {
		if got := sb.OffsetToPosition(tc.offset); got != tc.pos {
			t.Errorf("OffsetToPosition(%d) = %+v, want %+v", tc.offset, got, tc.pos)
		}
		if got := sb.PositionToOffset(tc.pos); got != tc.offset {
			t.Errorf("PositionToOffset(%+v) = %d, want %d", tc.pos, got, tc.offset)
		}
	}
	if got := sb.OffsetToPosition(99); got != (types.Position{Line: 2, Col: 5}) {
		t.Errorf("clamped offset = %+v", got)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# Title\n\nbody\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	sb := NewSliceBuffer()
	if err := sb.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sb.LineCount() != 4 || sb.IsModified() {
		t.Fatalf("lines = %d modified = %v", sb.LineCount(), sb.IsModified())
	}

	if _, err := sb.Insert(types.Position{Line: 2, Col: 4}, []byte("!")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	out := filepath.Join(dir, "out.md")
	if err := sb.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "# Title\n\nbody!\n" {
		t.Fatalf("saved %q", data)
	}
	if sb.IsModified() || sb.FilePath() != out {
		t.Fatalf("after save modified=%v path=%q", sb.IsModified(), sb.FilePath())
	}
}

func TestLoadMissingFile(t *testing.T) {
	sb := newBuffer("old")
	path := filepath.Join(t.TempDir(), "new.md")
	if err := sb.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sb.Text() != "" || sb.FilePath() != path {
		t.Fatalf("text=%q path=%q", sb.Text(), sb.FilePath())
	}
}

func TestLineOutOfBounds(t *testing.T) {
	sb := newBuffer("a")
	if _, err := sb.Line(3); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
	if err := NewSliceBuffer().Save(""); err == nil {
		t.Fatal("save without path succeeded")
	}
}
