package stack

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadEnvFile reads a KEY=VALUE file (the format hereya uses to pass package
// parameters) and returns its entries. Blank lines and #-comments are
// skipped; a leading "export " and matching single or double quotes around
// the value are stripped.
func LoadEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	defer f.Close()

	env := make(map[string]string)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		text = strings.TrimPrefix(text, "export ")

		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected KEY=VALUE", path, line)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%s:%d: empty key", path, line)
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		env[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}

	return env, nil
}

// MergedEnv overlays the entries of an optional env file over the process
// environment. An empty path returns the process environment alone.
func MergedEnv(envFile string) (map[string]string, error) {
	env := Environ()
	if envFile == "" {
		return env, nil
	}

	fileEnv, err := LoadEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	for key, value := range fileEnv {
		env[key] = value
	}
	return env, nil
}
