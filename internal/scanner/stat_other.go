//go:build !linux && !darwin

package scanner

import (
	"errors"
	"io/fs"
	"os"

	"github.com/lumipallolabs/anticipate/internal/model"
)

// statPath probes path with os.Stat, and os.Lstat for symlink detection
func statPath(path string) (model.Target, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Absent(path), nil
		}
		return model.Target{}, err
	}

	target := model.Target{
		Path:    path,
		Kind:    model.KindFile,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if info.IsDir() {
		target.Kind = model.KindDir
	}

	if linfo, err := os.Lstat(path); err == nil {
		target.IsSymlink = linfo.Mode()&fs.ModeSymlink != 0
	}

	return target, nil
}
