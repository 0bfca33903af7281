package executor

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jchultarsky101/pcli2-mcp/internal/errors"
)

// commonInstallDirs are checked after PATH. pcli2 is distributed as a
// cargo-installed binary, so ~/.cargo/bin is included.
func commonInstallDirs() []string {
	dirs := []string{"/usr/local/bin", "/usr/bin"}

	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".cargo", "bin"),
		)
	}

	return dirs
}

// Discover locates the pcli2 binary.
//
// When explicit is non-empty it is used and only it; otherwise the
// search order is PATH, then common installation directories. Returns
// ProgramNotFoundError listing every location searched.
func Discover(log *slog.Logger, explicit string) (string, error) {
	if explicit != "" {
		log.Debug("Using explicit pcli2 path", "path", explicit)

		if info, err := os.Stat(explicit); err == nil && !info.IsDir() {
			return explicit, nil
		}

		return "", &errors.ProgramNotFoundError{SearchedPaths: []string{explicit}}
	}

	if path, err := exec.LookPath(DefaultProgram); err == nil {
		log.Debug("Found pcli2 in PATH", "path", path)

		return path, nil
	}

	searched := []string{"$PATH"}

	for _, dir := range commonInstallDirs() {
		candidate := filepath.Join(dir, DefaultProgram)
		searched = append(searched, candidate)

		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			log.Debug("Found pcli2 in common install dir", "path", candidate)

			return candidate, nil
		}
	}

	return "", &errors.ProgramNotFoundError{SearchedPaths: searched}
}
