// SPDX-License-Identifier: MPL-2.0

package rez

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// PathEnvVar overrides resolver location when set.
const PathEnvVar = "REZ_PATH"

// ErrResolverNotFound is the sentinel error wrapped by ResolverNotFoundError.
var ErrResolverNotFound = errors.New("resolver not found")

// ResolverNotFoundError is returned when no resolver executable could be
// located by any strategy. It wraps ErrResolverNotFound.
type ResolverNotFoundError struct {
	Tried []string
}

// Error implements the error interface.
func (e *ResolverNotFoundError) Error() string {
	return fmt.Sprintf("rez executable not found (tried: %s)", strings.Join(e.Tried, ", "))
}

// Unwrap returns ErrResolverNotFound so callers can use errors.Is for programmatic detection.
func (e *ResolverNotFoundError) Unwrap() error { return ErrResolverNotFound }

// Locator finds the resolver executable once per process. The zero value is
// usable; location runs on first call and the result is reused afterward.
type Locator struct {
	once sync.Once
	path string
	err  error

	// lookPath is a seam for tests; defaults to exec.LookPath.
	lookPath func(file string) (string, error)
}

// NewLocator creates a resolver locator.
func NewLocator() *Locator {
	return &Locator{lookPath: exec.LookPath}
}

// Path returns the located resolver executable. Strategies, in order:
// the REZ_PATH environment variable, the ~/.rez-tools/bin wrapper from the
// installer, the system PATH, then well-known install locations.
func (l *Locator) Path() (string, error) {
	l.once.Do(func() {
		l.path, l.err = l.locate()
	})
	return l.path, l.err
}

// Prefix returns the resolver invocation prefix for command assembly. A
// located Python interpreter yields "python -m rez"; location failure falls
// back to a plain "rez" so assembly still produces a usable command line.
func (l *Locator) Prefix() []string {
	path, err := l.Path()
	if err != nil {
		return []string{"rez"}
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.HasPrefix(base, "python") {
		return []string{path, "-m", "rez"}
	}
	return []string{path}
}

func (l *Locator) locate() (string, error) {
	var tried []string

	if env := os.Getenv(PathEnvVar); env != "" {
		if fileExists(env) {
			return env, nil
		}
		tried = append(tried, fmt.Sprintf("%s=%s", PathEnvVar, env))
	} else {
		tried = append(tried, PathEnvVar+" (unset)")
	}

	if wrapper, err := wrapperPath(); err == nil {
		if fileExists(wrapper) {
			return wrapper, nil
		}
		tried = append(tried, wrapper)
	}

	lookPath := l.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if path, err := lookPath("rez"); err == nil {
		return path, nil
	}
	tried = append(tried, "PATH")

	for _, path := range commonLocations() {
		if fileExists(path) {
			return path, nil
		}
		tried = append(tried, path)
	}

	return "", &ResolverNotFoundError{Tried: tried}
}

// wrapperPath returns the resolver wrapper written by the installer.
func wrapperPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	name := "rez"
	if runtime.GOOS == "windows" {
		name = "rez.bat"
	}
	return filepath.Join(home, ".rez-tools", "bin", name), nil
}

func commonLocations() []string {
	if runtime.GOOS == "windows" {
		return []string{
			`C:\Program Files\rez\bin\rez.exe`,
			`C:\rez\bin\rez.exe`,
		}
	}
	return []string{
		"/usr/local/bin/rez",
		"/usr/bin/rez",
		"/opt/rez/bin/rez",
	}
}

// fileExists checks if a path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
