// Package stacktrace builds pseudo-tracebacks: renderings of the
// call chain that led to a failed check, limited to frames belonging
// to user test code. Frames from the Go runtime, from installed
// modules, and from this library itself are filtered out, so the
// resulting trace reads like a normal failure trace pointed at the
// test body.
package stacktrace

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// DefaultMaxFrames bounds the stack walk when callers do not supply
// their own limit.
const DefaultMaxFrames = 32

// Frame captures one call site in a pseudo-traceback.
type Frame struct {
	// File is the source path, relative to the working directory
	// when possible.
	File string

	// Line is the line number within File.
	Line int

	// Function is the base function name, without the package
	// path prefix.
	Function string

	// Source is the trimmed text of the source line.
	Source string
}

// String renders the frame as a single traceback line.
func (f Frame) String() string {
	return fmt.Sprintf(
		"%s:%d in %s() -> %s",
		f.File, f.Line, f.Function, f.Source,
	)
}

// libRoot is the directory holding this library's packages. Frames
// whose files live under it are treated as library internals and
// skipped, except for test files, which belong to whoever wrote the
// test.
var libRoot = func() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(filepath.Dir(file))
}()

var (
	workDirOnce sync.Once
	workDir     string
)

// relPath shortens file against the working directory. The full path
// is returned unchanged when no relative form exists.
func relPath(file string) string {
	workDirOnce.Do(func() {
		workDir, _ = os.Getwd()
	})
	if workDir == "" {
		return file
	}
	rel, err := filepath.Rel(workDir, file)
	if err != nil {
		return file
	}
	return rel
}

var (
	sourceMu    sync.Mutex
	sourceCache = make(map[string][]string)
)

// sourceLine returns the trimmed text of the given line, reading and
// caching the file on first use.
func sourceLine(file string, line int) string {
	sourceMu.Lock()
	defer sourceMu.Unlock()

	lines, ok := sourceCache[file]
	if !ok {
		data, err := os.ReadFile(file)
		if err == nil {
			lines = strings.Split(string(data), "\n")
		}
		sourceCache[file] = lines
	}

	if line < 1 || line > len(lines) {
		return "<source unavailable>"
	}
	return strings.TrimSpace(lines[line-1])
}

// baseFunction strips the package path from a fully qualified
// function name, e.g. "digital.vasic.x/pkg/y.TestFoo.func1"
// becomes "TestFoo.func1".
func baseFunction(qualified string) string {
	if i := strings.LastIndex(qualified, "/"); i >= 0 {
		qualified = qualified[i+1:]
	}
	if i := strings.Index(qualified, "."); i >= 0 {
		qualified = qualified[i+1:]
	}
	return qualified
}

// isTestFunction reports whether the base function name follows the
// Go test naming convention. Subtest closures keep the prefix of
// their parent ("TestFoo.func1"), so they match as well.
func isTestFunction(name string) bool {
	return strings.HasPrefix(name, "Test") ||
		strings.HasPrefix(name, "Benchmark") ||
		strings.HasPrefix(name, "Fuzz")
}

// isInstalledCode reports whether file belongs to the Go runtime or
// to a downloaded module rather than to the code under test.
func isInstalledCode(file string) bool {
	if goroot := runtime.GOROOT(); goroot != "" &&
		strings.HasPrefix(file, goroot) {
		return true
	}
	sep := string(filepath.Separator)
	return strings.Contains(file, sep+"pkg"+sep+"mod"+sep) ||
		strings.Contains(file, sep+"vendor"+sep)
}

// isLibraryInternal reports whether file is part of this library's
// own source. Test files are exempt so the library's own test suite
// still produces traces.
func isLibraryInternal(file string) bool {
	if libRoot == "" || strings.HasSuffix(file, "_test.go") {
		return false
	}
	return strings.HasPrefix(file, libRoot+string(filepath.Separator))
}

// Frames walks the active call stack outward from the caller,
// collecting up to max user-code frames. skip is the number of
// additional frames above the caller of Frames to ignore.
//
// The walk stops after the first frame whose function name carries
// the test naming convention (the test body is the outermost frame
// of interest), or as soon as a frame belongs to installed code
// (the walk has left user code without finding a test function).
// Leaving user code before meeting a test frame is not an error;
// the trace simply ends at the boundary.
func Frames(skip, max int) []Frame {
	if max <= 0 {
		max = DefaultMaxFrames
	}

	pcs := make([]uintptr, max+64)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	collected := make([]Frame, 0, max)
	for {
		frame, more := frames.Next()
		if frame.File == "" {
			break
		}
		// Panic machinery appears on the stack when captures run
		// inside a deferred recover; it is not a user-code
		// boundary.
		if strings.HasPrefix(frame.Function, "runtime.") {
			if !more {
				break
			}
			continue
		}
		if isInstalledCode(frame.File) {
			break
		}
		if isLibraryInternal(frame.File) {
			if !more {
				break
			}
			continue
		}

		fn := baseFunction(frame.Function)
		collected = append(collected, Frame{
			File:     relPath(frame.File),
			Line:     frame.Line,
			Function: fn,
			Source:   sourceLine(frame.File, frame.Line),
		})

		if isTestFunction(fn) || len(collected) >= max || !more {
			break
		}
	}
	return collected
}

// Capture renders the pseudo-traceback for the current call site as
// a multi-line string, outermost test frame first. skip and max
// follow the Frames contract.
func Capture(skip, max int) string {
	frames := Frames(skip+1, max)
	lines := make([]string, 0, len(frames))
	for i := len(frames) - 1; i >= 0; i-- {
		lines = append(lines, frames[i].String())
	}
	return strings.Join(lines, "\n")
}
