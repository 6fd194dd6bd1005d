package config

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const maxEnvLineBytes = 1 << 20

// LoadEnvFile copies KEY=VALUE pairs from path into the process environment.
// Blank lines and lines starting with # are skipped, the first occurrence of a
// key wins, and variables that already hold a value are left alone. Unquoted
// values are taken verbatim after trimming, so a # inside them is kept.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEnvLineBytes)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok || seen[key] {
			continue
		}
		seen[key] = true

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}

func parseEnvLine(raw string) (key, value string, ok bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
	if key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(value)

	if isQuoted(value) {
		// godotenv handles escapes inside quoted values.
		if pair, err := godotenv.Unmarshal(key + "=" + value); err == nil {
			if unquoted, exists := pair[key]; exists {
				value = unquoted
			}
		}
	}

	return key, value, true
}

func isQuoted(value string) bool {
	if len(value) < 2 {
		return false
	}
	first, last := value[0], value[len(value)-1]
	return first == last && (first == '"' || first == '\'')
}
