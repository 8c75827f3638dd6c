package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Color codes using ANSI escape sequences
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// colorsEnabled determines if color output is enabled
var colorsEnabled = true

func init() {
	if os.Getenv("NO_COLOR") != "" {
		colorsEnabled = false
	}
}

// colorize wraps text with ANSI color codes if colors are enabled
func colorize(text, color string) string {
	if !colorsEnabled {
		return text
	}
	return color + text + colorReset
}

// Success prints a success message with a green checkmark
func Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s %s\n", colorize("✓", colorGreen), msg)
}

// Error prints an error message with a red X to stderr
func Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s Error: %s\n", colorize("✗", colorRed), msg)
}

// Warning prints a warning message with a yellow warning sign
func Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s Warning: %s\n", colorize("⚠", colorYellow), msg)
}

// Info prints an informational message
func Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(msg)
}

// Field prints a labeled field (key-value pair)
func Field(label, value string) {
	labelFormatted := fmt.Sprintf("%-16s", label+":")
	fmt.Printf("%s %s\n", colorize(labelFormatted, colorGray), value)
}

// Table represents a simple text table
type Table struct {
	Headers []string
	Rows    [][]string
	writer  io.Writer
}

// NewTable creates a new table with the given headers
func NewTable(headers ...string) *Table {
	return &Table{
		Headers: headers,
		Rows:    [][]string{},
		writer:  os.Stdout,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(values ...string) {
	t.Rows = append(t.Rows, values)
}

// Print renders the table
func (t *Table) Print() {
	if len(t.Headers) == 0 {
		return
	}

	widths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		widths[i] = len(header)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	formats := make([]string, len(t.Headers))
	for i := range widths {
		formats[i] = fmt.Sprintf("%%-%ds", widths[i])
	}
	formatStr := strings.Join(formats, "  ")

	// Pad before colouring so escape codes don't skew the widths.
	headerVals := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		headerVals[i] = h
	}
	_, _ = fmt.Fprintln(t.writer, colorize(fmt.Sprintf(formatStr, headerVals...), colorBold)) // Ignore write errors - main operation succeeded

	totalWidth := 2 * (len(widths) - 1)
	for _, w := range widths {
		totalWidth += w
	}
	_, _ = fmt.Fprintln(t.writer, strings.Repeat("-", totalWidth))

	for _, row := range t.Rows {
		rowVals := make([]interface{}, len(t.Headers))
		for i := range rowVals {
			if i < len(row) {
				rowVals[i] = row[i]
			} else {
				rowVals[i] = ""
			}
		}
		_, _ = fmt.Fprintf(t.writer, formatStr+"\n", rowVals...)
	}
}

// JSON marshals and prints data as indented JSON
func JSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatBytes formats byte sizes in human-readable format (B, KB, MB, etc.)
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// StatusIcon returns a colored status icon based on status string
func StatusIcon(status string) string {
	switch strings.ToLower(status) {
	case "pass", "ok", "valid", "success":
		return colorize("✓", colorGreen)
	case "warn", "warning", "missing":
		return colorize("⚠", colorYellow)
	case "fail", "error", "invalid":
		return colorize("✗", colorRed)
	default:
		return "•"
	}
}

// EmptyLine prints an empty line
func EmptyLine() {
	fmt.Println()
}

// ConfirmPrompt asks the user for confirmation (y/n)
// Returns true if user confirms, false otherwise
func ConfirmPrompt(message string) bool {
	fmt.Printf("%s [y/N]: ", message)
	var response string
	_, _ = fmt.Scanln(&response) // Ignore error, treat as no confirmation if failed
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// DisableColors disables color output
func DisableColors() {
	colorsEnabled = false
}
