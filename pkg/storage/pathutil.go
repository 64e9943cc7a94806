package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// safeJoin resolves name under dir and guarantees the result cannot escape
// dir via path traversal in a collection/variable-set id. Adapted from the
// teacher's ValidatePathWithinWorkDir (pkg/core/tools/pathutil.go), which
// guarded file-tool writes against a path escaping the working directory;
// here it guards a collection id's derived filename against escaping the
// collections directory.
func safeJoin(dir, name string) (string, error) {
	joined := filepath.Join(dir, name)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory %q: %w", dir, err)
	}
	absJoined, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", joined, err)
	}

	rel, err := filepath.Rel(absDir, absJoined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("id %q escapes storage directory", name)
	}
	return absJoined, nil
}
