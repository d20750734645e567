package core

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/josephlewis42/smallsh/core/vos"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// the PATH variable of env. If file contains a slash, it is returned as is and
// the kernel reports any problem when it is executed.
//
// When the only match is not executable, LookPath returns fs.ErrPermission
// so callers can tell the two failures apart.
func LookPath(env vos.VEnv, file string) (string, error) {
	if strings.Contains(file, "/") {
		return file, nil
	}

	var lastErr error = ErrNotFound
	for _, dir := range filepath.SplitList(env.Getenv(vos.EnvPath)) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		err := findExecutable(path)
		if err == nil {
			return path, nil
		}
		if err == fs.ErrPermission {
			lastErr = err
		}
	}
	return "", lastErr
}
