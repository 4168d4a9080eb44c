package launcher

import (
	"os"
	"runtime"
	"strings"
)

// EnvOverride names the environment variable that, when non-empty,
// takes priority over all other interpreter candidates.
const EnvOverride = "STAGEHAND_PYTHON"

// Environment markers passed to every spawned backend.
const (
	envUnbuffered    = "PYTHONUNBUFFERED=1"
	envDesktopMarker = "STAGEHAND_DESKTOP=1"
)

// Candidates builds the ordered interpreter list for one launch
// attempt: the STAGEHAND_PYTHON override first, then the configured
// list, then platform defaults. The result is deduplicated in order.
func Candidates(configured []string) []string {
	ordered := make([]string, 0, len(configured)+3)
	if override := strings.TrimSpace(os.Getenv(EnvOverride)); override != "" {
		ordered = append(ordered, override)
	}
	ordered = append(ordered, configured...)
	ordered = append(ordered, platformDefaults()...)

	seen := make(map[string]struct{}, len(ordered))
	unique := ordered[:0]
	for _, candidate := range ordered {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		unique = append(unique, candidate)
	}
	return unique
}

func platformDefaults() []string {
	if runtime.GOOS == "windows" {
		return []string{"py", "python"}
	}
	return []string{"python3", "python"}
}
