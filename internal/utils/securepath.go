package utils

import (
	"errors"
	"path/filepath"
	"strings"
)

// SecureJoin safely joins root and userPath ensuring the result remains within root.
// Absolute user paths are re-rooted under root; traversal outside root is an error.
func SecureJoin(root, userPath string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", errors.New("root required")
	}
	cleanRoot := filepath.Clean(root)
	if strings.TrimSpace(userPath) == "" {
		return cleanRoot, nil
	}
	up := filepath.Clean(userPath)
	if filepath.IsAbs(up) {
		up = strings.TrimPrefix(up, string(filepath.Separator))
	}
	candidate := filepath.Join(cleanRoot, up)
	rel, err := filepath.Rel(cleanRoot, candidate)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New("path escapes root")
	}
	return candidate, nil
}

// SecureChildFile resolves "<name><ext>" as a direct child of dir. Names with
// separators or traversal are rejected so ids from URLs cannot address
// nested or foreign files.
func SecureChildFile(dir, name, ext string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", errors.New("invalid file name")
	}
	path, err := SecureJoin(dir, name+ext)
	if err != nil {
		return "", err
	}
	if filepath.Dir(path) != filepath.Clean(dir) {
		return "", errors.New("path escapes root")
	}
	return path, nil
}
