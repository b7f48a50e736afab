//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package scan

import (
	"os"

	"github.com/pkg/errors"
)

func loadFile(path string) ([]byte, func(), error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to stat")
	}
	if info.IsDir() {
		return nil, nil, errors.Errorf("%s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read")
	}
	return data, func() {}, nil
}
