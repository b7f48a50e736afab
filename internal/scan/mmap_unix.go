//go:build linux || darwin || freebsd || netbsd || openbsd

package scan

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// loadFile maps a regular file read-only. Other files (pipes, devices) and
// empty files are read instead. The returned function releases the data.
func loadFile(path string) ([]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to stat")
	}
	if info.IsDir() {
		return nil, nil, errors.Errorf("%s is a directory", path)
	}
	size := info.Size()
	if !info.Mode().IsRegular() || size == 0 || int64(int(size)) != size {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to read")
		}
		return data, func() {}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to mmap")
	}
	return data, func() {
		if err := unix.Munmap(data); err != nil {
			panic(errors.Wrapf(err, "munmap %s", path))
		}
	}, nil
}
