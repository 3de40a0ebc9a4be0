package source

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/teranos/glslls/errors"
)

// File is one physical source buffer: the system preamble, the user's
// configured preamble, or the user's main shader file, plus every
// transitively included header. Its line table is built once at
// construction and never mutated, matching the immutability of the
// CompilerResult it ultimately feeds.
type File struct {
	ID       FileID
	Path     string // absolute path, or a synthetic name like "<preamble>"
	Text     string
	lineOffs []int // byte offset of the start of each line
}

// NewFile builds a File and its line table from raw text.
func NewFile(id FileID, path, text string) *File {
	f := &File{ID: id, Path: path, Text: text}
	f.lineOffs = []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			f.lineOffs = append(f.lineOffs, i+1)
		}
	}
	return f
}

// LineCount returns the number of lines in the file, counting a final
// unterminated line.
func (f *File) LineCount() int { return len(f.lineOffs) }

// LineText returns the raw text of one line, without its terminator.
func (f *File) LineText(line int) string {
	if line < 0 || line >= len(f.lineOffs) {
		return ""
	}
	start := f.lineOffs[line]
	end := len(f.Text)
	if line+1 < len(f.lineOffs) {
		end = f.lineOffs[line+1]
	}
	s := f.Text[start:end]
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s
}

// OffsetToPosition converts a byte offset into a (line, byte-column)
// Position. Column is in bytes; callers wanting UTF-16 columns should
// use OffsetToUTF16Position.
func (f *File) OffsetToPosition(offset int) Position {
	line := searchLine(f.lineOffs, offset)
	return Position{Line: line, Character: offset - f.lineOffs[line]}
}

// OffsetToUTF16Position converts a byte offset into a Position whose
// Character field counts UTF-16 code units from the start of the line,
// as required when the client negotiated utf-16 position encoding.
func (f *File) OffsetToUTF16Position(offset int) Position {
	line := searchLine(f.lineOffs, offset)
	lineStart := f.lineOffs[line]
	return Position{Line: line, Character: utf16Len(f.Text[lineStart:offset])}
}

// PositionToOffset converts a (line, byte-column) Position back to a
// byte offset into Text.
func (f *File) PositionToOffset(p Position) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(f.lineOffs) {
		return len(f.Text)
	}
	lineStart := f.lineOffs[p.Line]
	lineEnd := len(f.Text)
	if p.Line+1 < len(f.lineOffs) {
		lineEnd = f.lineOffs[p.Line+1]
	}
	off := lineStart + p.Character
	if off > lineEnd {
		off = lineEnd
	}
	return off
}

// UTF16PositionToOffset converts a Position whose Character counts
// UTF-16 code units into a byte offset.
func (f *File) UTF16PositionToOffset(p Position) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(f.lineOffs) {
		return len(f.Text)
	}
	lineStart := f.lineOffs[p.Line]
	lineEnd := len(f.Text)
	if p.Line+1 < len(f.lineOffs) {
		lineEnd = f.lineOffs[p.Line+1]
	}
	line := f.Text[lineStart:lineEnd]
	units := 0
	for i, r := range line {
		if units >= p.Character {
			return lineStart + i
		}
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
	}
	return lineEnd
}

func searchLine(lineOffs []int, offset int) int {
	lo, hi := 0, len(lineOffs)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineOffs[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

// FileSet owns the set of Files participating in one compilation: the
// system preamble, the optional user preamble, and the main file plus
// whatever it transitively #includes. FileID 0 is the first file added,
// which by convention is the main file.
type FileSet struct {
	files []*File
	byPath map[string]FileID
}

// NewFileSet creates an empty set. Add should be called first with the
// main file so that it receives FileID 0.
func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// Add registers a new file and returns its assigned FileID.
func (fs *FileSet) Add(path, text string) *File {
	id := FileID(len(fs.files))
	f := NewFile(id, path, text)
	fs.files = append(fs.files, f)
	fs.byPath[path] = id
	return f
}

// Get returns the file for id, or nil if id is out of range.
func (fs *FileSet) Get(id FileID) *File {
	if id < 0 || int(id) >= len(fs.files) {
		return nil
	}
	return fs.files[id]
}

// Lookup returns the FileID already registered for path, if any.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.byPath[path]
	return id, ok
}

// MainFileID is the id of the first file added, which by convention is
// the main file.
func (fs *FileSet) MainFileID() FileID {
	if len(fs.files) == 0 {
		return InvalidFileID
	}
	return fs.files[0].ID
}

// ValidateUTF8 returns an error if text is not valid UTF-8, matching the
// tokenizer's requirement that the source buffer is decodable.
func ValidateUTF8(text string) error {
	if !utf8.ValidString(text) {
		return errors.New("source buffer is not valid UTF-8")
	}
	return nil
}
