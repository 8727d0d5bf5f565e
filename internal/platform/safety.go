package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the folder under os.TempDir() used by the dev sandbox.
const DevDirName = "notes-dev"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	tempDir := os.TempDir()
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir)) {
		return true
	}

	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolveStorePath determines the actual store file based on safety rules.
// When forceTemp is set, a path outside the temp dir is re-rooted into
// $TMPDIR/notes-dev so development runs never touch the user's real notes.
func ResolveStorePath(userPath string, forceTemp bool) string {
	if !forceTemp {
		return userPath
	}

	// Paths already inside the temp dir (t.TempDir()) are trusted as is.
	cleanUserPath := filepath.Clean(userPath)
	rel, err := filepath.Rel(os.TempDir(), cleanUserPath)
	if err == nil && filepath.IsAbs(cleanUserPath) && !strings.HasPrefix(rel, "..") {
		return cleanUserPath
	}

	name := filepath.Base(cleanUserPath)
	if name == "." || name == string(os.PathSeparator) {
		name = "notes.json"
	}
	return filepath.Join(os.TempDir(), DevDirName, name)
}
