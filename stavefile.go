//go:build stave

package main

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary         = "bin/supa-mdx-lint"
	mainPkg        = "./cmd/supa-mdx-lint"
	dictionaryPath = "pkg/lint/rules/dictionary.txt"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"fmt":  Lint.Fmt,
	"docs": Docs,
}

// Namespace types group related targets.
type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

// Build compiles supa-mdx-lint with version info, skipping the build when
// no sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building supa-mdx-lint...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check runs format, lint, dictionary and test targets in order.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Dictionary, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs supa-mdx-lint to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Docs lints an MDX documentation tree with the freshly built binary.
// The tree defaults to ./docs and can be set with DOCS_DIR.
func Docs() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("DOCS_DIR"), "docs")
	fmt.Printf("Linting %s...\n", dir)
	start := time.Now()
	err := sh.RunV(binary, "lint", "--format", "pretty", dir)
	fmt.Printf("Finished in %s\n", time.Since(start).Round(time.Millisecond))
	return err
}

// Dictionary checks the embedded spelling dictionary: one lowercase word
// and a positive frequency per line, no duplicates.
func Dictionary() error {
	f, err := os.Open(dictionaryPath)
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	seen := make(map[string]int)
	var problems []string
	scanner := bufio.NewScanner(f)
	for row := 1; scanner.Scan(); row++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			problems = append(problems, fmt.Sprintf("%d: want \"word frequency\"", row))
			continue
		}
		word := fields[0]
		if n, err := strconv.Atoi(fields[1]); err != nil || n <= 0 {
			problems = append(problems, fmt.Sprintf("%d: bad frequency %q", row, fields[1]))
		}
		if word != strings.ToLower(word) {
			problems = append(problems, fmt.Sprintf("%d: %q is not lowercase", row, word))
		}
		if prev, ok := seen[word]; ok {
			problems = append(problems, fmt.Sprintf("%d: %q already on line %d", row, word, prev))
		}
		seen[word] = row
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read dictionary: %w", err)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s:\n  %s", dictionaryPath, strings.Join(problems, "\n  "))
	}
	fmt.Printf("✓ %d dictionary words OK\n", len(seen))
	return nil
}

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Fuzz runs the correction planner fuzz test for FUZZTIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	return sh.RunV("go", "test", "-run", "^$", "-fuzz", "^FuzzPlan$", "-fuzztime", fuzzTime, "./pkg/fix")
}

// Coverage renders coverage.out as HTML.
func (Test) Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Bench runs the rope and parser benchmarks.
func (Test) Bench() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./pkg/rope", "./pkg/parser/...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Gate runs the checks CI requires before merging.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Dictionary,
		Build,
		Test.Default,
		CI.ModTidy,
	)
	fmt.Println("✓ All CI gate checks passed")
	return nil
}

// ModTidy fails when `go mod tidy` would change go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum changed after 'go mod tidy' - please commit the changes")
	}
	return nil
}

func readModFiles() (string, error) {
	var b strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		b.Write(data)
	}
	return b.String(), nil
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}
