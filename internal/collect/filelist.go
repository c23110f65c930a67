package collect

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/inodb/vibe-sv/internal/vcf"
)

// ReadFileList returns the paths listed in a file, one per line.
// Empty lines are skipped; a path is otherwise taken verbatim.
func ReadFileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: file list %s: %w", vcf.ErrMissingFile, path, err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		p := strings.TrimRight(scanner.Text(), "\r")
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: file list %s: %w", vcf.ErrMissingFile, path, err)
	}
	return paths, nil
}

// CountFiles returns the number of paths in a file list.
func CountFiles(path string) (int, error) {
	paths, err := ReadFileList(path)
	if err != nil {
		return 0, err
	}
	return len(paths), nil
}
