package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultDataFile is the dataset name looked up when no path is configured.
const DefaultDataFile = "cities_canada-usa.tsv"

// DataPathCandidates lists where a dataset named by userPath may live, in
// lookup order: the path as given, next to the executable, then under a
// data/ directory in the working dir, the executable dir and configDir.
func DataPathCandidates(userPath, configDir string) []string {
	if userPath == "" {
		userPath = DefaultDataFile
	}
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}

	candidates := []string{userPath}
	base := filepath.Base(userPath)

	execDir, err := GetExecutableDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(execDir, userPath))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, "data", base))
	}
	if execDir != "" {
		candidates = append(candidates,
			filepath.Join(execDir, "data", base),
			filepath.Join(filepath.Dir(execDir), "data", base))
	}
	if configDir != "" {
		candidates = append(candidates, filepath.Join(configDir, "data", base))
	}
	return candidates
}

// ResolveDataPath returns the first existing regular file among the
// candidates for userPath. When none exists the path is returned unchanged
// so the caller reports the name the user asked for.
func ResolveDataPath(userPath, configDir string) string {
	for _, path := range DataPathCandidates(userPath, configDir) {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Found dataset: %s", path)
			return path
		}
		log.Debugf("Dataset candidate not found: %s", path)
	}
	if userPath == "" {
		return DefaultDataFile
	}
	return userPath
}
