package source

import "strings"

// File captures the raw content of one input file.
// Content is kept byte-exact: no BOM stripping, no CRLF normalisation.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32
}

// FileMeta is what fixers see about a file besides its tokens.
type FileMeta struct {
	Path string // slash-normalised
	Name string // base name
	Ext  string // lower-case extension without the dot
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// MetaFor builds FileMeta for path.
func MetaFor(path string) FileMeta {
	p := normalizePath(path)
	name := BaseName(p)
	ext := ""
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		ext = strings.ToLower(name[i+1:])
	}
	return FileMeta{Path: p, Name: name, Ext: ext}
}
