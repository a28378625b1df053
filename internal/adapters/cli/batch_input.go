package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/devbush/likewrapped/internal/domain"
)

// ParseInputFile reads a file containing handles or profile URLs, one per line.
// Blank lines and lines starting with # are ignored.
// Returns a slice of handles (extracted from URLs if needed).
func ParseInputFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var handles []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		account, err := domain.ParseAccountInput(line)
		if err != nil {
			// Skip invalid lines
			continue
		}

		handles = append(handles, account.Handle)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return handles, nil
}

// CollectInputs combines CLI arguments and file input, deduplicating
// handles case-insensitively. Args are processed first, then file entries.
// Returns handles in order of first appearance.
func CollectInputs(args []string, filePath string) ([]string, error) {
	seen := make(map[string]bool)
	var handles []string

	add := func(handle string) {
		key := strings.ToLower(handle)
		if !seen[key] {
			seen[key] = true
			handles = append(handles, handle)
		}
	}

	for _, arg := range args {
		account, err := domain.ParseAccountInput(arg)
		if err != nil {
			continue
		}
		add(account.Handle)
	}

	if filePath != "" {
		fileHandles, err := ParseInputFile(filePath)
		if err != nil {
			return nil, err
		}
		for _, h := range fileHandles {
			add(h)
		}
	}

	return handles, nil
}
