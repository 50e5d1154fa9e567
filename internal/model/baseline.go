package model

import (
	"sort"
	"time"
)

// FileBaseline is a file's modification time at the moment watching began.
// It is captured once and only compared against.
type FileBaseline struct {
	Kind    Kind
	ModTime time.Time
}

// NewFileBaseline captures the baseline for a probed file
func NewFileBaseline(t Target) FileBaseline {
	return FileBaseline{Kind: t.Kind, ModTime: t.ModTime}
}

// Changed reports whether a live probe differs from the baseline.
// Content is never compared, only the modification time (and the kind, in
// case the path was replaced by something of a different type).
func (b FileBaseline) Changed(live Target) bool {
	return live.Kind != b.Kind || !live.ModTime.Equal(b.ModTime)
}

// DirectoryBaseline is the set of entry names present in a directory at
// the moment watching began. Only membership matters.
type DirectoryBaseline struct {
	names map[string]struct{}
}

// NewDirectoryBaseline captures a baseline from a directory listing
func NewDirectoryBaseline(names []string) DirectoryBaseline {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return DirectoryBaseline{names: set}
}

// Len returns the number of entries in the baseline
func (b DirectoryBaseline) Len() int {
	return len(b.names)
}

// Contains reports whether name was present when the baseline was taken
func (b DirectoryBaseline) Contains(name string) bool {
	_, ok := b.names[name]
	return ok
}

// Names returns the baseline entries sorted by name
func (b DirectoryBaseline) Names() []string {
	names := make([]string, 0, len(b.names))
	for name := range b.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Diff lists the entries created and deleted since a baseline
type Diff struct {
	Created []string
	Deleted []string
}

// Empty returns true if the live listing matches the baseline
func (d Diff) Empty() bool {
	return len(d.Created) == 0 && len(d.Deleted) == 0
}

// First returns one changed entry name, preferring created entries
func (d Diff) First() string {
	if len(d.Created) > 0 {
		return d.Created[0]
	}
	if len(d.Deleted) > 0 {
		return d.Deleted[0]
	}
	return ""
}

// Compare diffs a live listing against the baseline
func (b DirectoryBaseline) Compare(live []string) Diff {
	var diff Diff

	seen := make(map[string]struct{}, len(live))
	for _, name := range live {
		seen[name] = struct{}{}
		if !b.Contains(name) {
			diff.Created = append(diff.Created, name)
		}
	}

	for name := range b.names {
		if _, ok := seen[name]; !ok {
			diff.Deleted = append(diff.Deleted, name)
		}
	}

	sort.Strings(diff.Created)
	sort.Strings(diff.Deleted)
	return diff
}
