// Package validator wraps the external glTF schema validator: it runs
// the validator binary against a file and parses the JSON report it
// produces. The validation logic itself lives entirely in the external
// tool.
package validator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	json "github.com/goccy/go-json"
)

// ErrValidatorNotFound means the validator binary is not installed or
// not on the configured path.
var ErrValidatorNotFound = errors.New("glTF validator binary not found")

// Severity levels used by the validator report.
const (
	SeverityError = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// Message is one issue the validator raised.
type Message struct {
	Code     string `json:"code"`
	Severity int    `json:"severity"`
	Pointer  string `json:"pointer"`
	Text     string `json:"message"`
}

// Issues aggregates the report's findings.
type Issues struct {
	NumErrors   int       `json:"numErrors"`
	NumWarnings int       `json:"numWarnings"`
	NumInfos    int       `json:"numInfos"`
	NumHints    int       `json:"numHints"`
	Messages    []Message `json:"messages"`
	Truncated   bool      `json:"truncated"`
}

// Report is the validator's JSON output.
type Report struct {
	URI              string `json:"uri"`
	MimeType         string `json:"mimeType"`
	ValidatorVersion string `json:"validatorVersion"`
	Issues           Issues `json:"issues"`
}

// Valid reports whether the asset passed with no errors.
func (r *Report) Valid() bool {
	return r.Issues.NumErrors == 0
}

// SeverityName returns a printable name for a severity level.
func SeverityName(severity int) string {
	switch severity {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityHint:
		return "HINT"
	default:
		return fmt.Sprintf("SEVERITY(%d)", severity)
	}
}

// Runner invokes the external validator binary.
type Runner struct {
	// Binary is the validator executable name or path.
	Binary string
}

// Run validates the file at path and returns the parsed report. The
// validator is asked to write its report to stdout; a non-zero exit
// with a parseable report is not an error, since the validator exits
// non-zero for invalid assets.
func (r *Runner) Run(ctx context.Context, path string) (*Report, error) {
	bin := r.Binary
	if bin == "" {
		bin = "gltf_validator"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrValidatorNotFound, bin)
	}

	cmd := exec.CommandContext(ctx, bin, "-o", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	report, parseErr := ParseReport(stdout.Bytes())
	if parseErr != nil {
		if runErr != nil {
			return nil, fmt.Errorf("validator failed: %v: %s", runErr, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, parseErr
	}
	return report, nil
}

// ParseReport parses the validator's JSON report.
func ParseReport(data []byte) (*Report, error) {
	report := &Report{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("parsing validator report: %w", err)
	}
	return report, nil
}
