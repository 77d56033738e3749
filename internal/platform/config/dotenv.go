package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const defaultDotEnvDepth = 6

// LoadDotEnv loads the first .env file found in dir or its parents, up to
// maxDepth levels. Variables already set in the environment win. It returns
// the loaded path, or "" when no file was found.
func LoadDotEnv(dir string, maxDepth int) (string, error) {
	if maxDepth <= 0 {
		maxDepth = defaultDotEnvDepth
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil
		}
		dir = wd
	}

	for i := 0; i <= maxDepth; i++ {
		candidate := filepath.Join(dir, ".env")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			if err := godotenv.Load(candidate); err != nil {
				return "", err
			}
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}
