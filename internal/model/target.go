package model

import "time"

// Kind is the resolved type of a watched path
type Kind int

const (
	KindAbsent Kind = iota
	KindFile
	KindDir
)

// String returns a human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	default:
		return "absent"
	}
}

// Target is one status probe of a watched path.
// It is re-derived on every probe and never cached across polls.
type Target struct {
	Path      string
	Kind      Kind
	ModTime   time.Time
	Size      int64
	IsSymlink bool // the path itself is a symlink; Kind describes its target
}

// Absent returns a Target describing a path that does not exist
func Absent(path string) Target {
	return Target{Path: path, Kind: KindAbsent}
}

// Exists reports whether the probe found the path
func (t Target) Exists() bool {
	return t.Kind != KindAbsent
}

// IsDir reports whether the path is a directory
func (t Target) IsDir() bool {
	return t.Kind == KindDir
}

// Descendable reports whether a watch on this target should recurse into
// its entries. Symlinked directories are watched by their target's mtime
// only, so cycles cannot recurse.
func (t Target) Descendable() bool {
	return t.Kind == KindDir && !t.IsSymlink
}
