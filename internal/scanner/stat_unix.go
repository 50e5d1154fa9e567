//go:build linux || darwin

package scanner

import (
	"errors"
	"io/fs"
	"time"

	"github.com/lumipallolabs/anticipate/internal/model"
	"golang.org/x/sys/unix"
)

// statPath probes path with stat(2), and lstat(2) for symlink detection
func statPath(path string) (model.Target, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		if isNotExist(err) {
			return model.Absent(path), nil
		}
		return model.Target{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}

	target := model.Target{
		Path: path,
		Kind: model.KindFile,
		Size: st.Size,
	}
	if st.Mode&unix.S_IFMT == unix.S_IFDIR {
		target.Kind = model.KindDir
	}

	sec, nsec := st.Mtim.Unix()
	target.ModTime = time.Unix(sec, nsec)

	var lst unix.Stat_t
	if err := unix.Lstat(path, &lst); err == nil {
		target.IsSymlink = lst.Mode&unix.S_IFMT == unix.S_IFLNK
	}

	return target, nil
}

// isNotExist returns true for errors meaning the path is not there (yet).
// ENOTDIR covers a parent component that is currently a file.
func isNotExist(err error) bool {
	return errors.Is(err, unix.ENOENT) || errors.Is(err, unix.ENOTDIR)
}
