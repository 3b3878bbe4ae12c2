// Package hints builds the "hint:" lines the CLI appends to error messages.
// Every hint has the form "\n  hint: <text>"; an empty string means no hint.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
// Replaced in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVariables are set by common CI providers.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

func inCI() bool {
	for _, name := range ciVariables {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect explains how to get Chrome running for backend
// ("rod" or "chromedp"). Suggestions already applied through the
// environment are left out.
func ForBrowserConnect(backend string) string {
	var parts []string

	if os.Getenv("ROD_NO_SANDBOX") != "1" && (inCI() || IsInContainer()) {
		parts = append(parts, "set ROD_NO_SANDBOX=1 in Docker and CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		if backend == "chromedp" {
			parts = append(parts, "install Chrome or Chromium, or set ROD_BROWSER_BIN to its path")
		} else {
			parts = append(parts, "rod downloads Chromium on first run; without network access set ROD_BROWSER_BIN")
		}
	}

	return join(parts)
}

// ForTimeout suggests a longer --timeout.
func ForTimeout() string {
	return line("raise --timeout (or pdf.timeout) for slow machines, e.g. --timeout 2m")
}

// ForConfigNotFound names where a config file is looked up. searchedPaths
// come from config.SearchPaths; the user config directory entry is offered
// as a place to create one.
func ForConfigNotFound(searchedPaths []string) string {
	text := "pass --config path/to/resume2pdf.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-resume2pdf") {
			text += " or create " + p
			break
		}
	}
	return line(text)
}

// ForMissingData points at the expected resume data file.
func ForMissingData(path string) string {
	return line("create " + path + " or point --data at your resume JSON/YAML")
}

// ForTemplateNotFound points at the template directory.
func ForTemplateNotFound(dir string) string {
	return line("put the template in " + dir + " or use --templates and --template")
}

// ForUnresolved lists placeholders left without a value.
func ForUnresolved(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return line("unset variables kept verbatim: " + strings.Join(names, ", ") + "; export them or add them to .env")
}

// ForOutputDirectory is used when an output file cannot be written.
func ForOutputDirectory() string {
	return line("check that the output directory (--output) is writable and not a file")
}

// ForStyleNotFound lists the styles stylesheet() accepts.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return line("available styles: " + strings.Join(available, ", "))
}

func line(text string) string {
	if text == "" {
		return ""
	}
	return "\n  hint: " + text
}

func join(parts []string) string {
	return line(strings.Join(parts, "; "))
}
