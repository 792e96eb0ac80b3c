package assistkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"google.golang.org/api/googleapi"
)

// OutputWriter handles formatted output (text or JSON)
type OutputWriter struct {
	JSON    bool
	NoColor bool
	Writer  io.Writer
}

func NewOutputWriter(useJSON, noColor bool) *OutputWriter {
	return &OutputWriter{
		JSON:    useJSON,
		NoColor: noColor,
		Writer:  os.Stdout,
	}
}

// WriteJSON outputs data as JSON
func (o *OutputWriter) WriteJSON(data interface{}) error {
	encoder := json.NewEncoder(o.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteMessage outputs a simple message
func (o *OutputWriter) WriteMessage(msg string) {
	fmt.Fprintln(o.Writer, msg)
}

// Writef outputs a formatted line
func (o *OutputWriter) Writef(format string, args ...interface{}) {
	fmt.Fprintf(o.Writer, format+"\n", args...)
}

// WriteBanner prints a rule-delimited section header.
func (o *OutputWriter) WriteBanner(width int, lines ...string) {
	rule := strings.Repeat("=", width)
	if o.NoColor {
		fmt.Fprintln(o.Writer, rule)
		for _, l := range lines {
			fmt.Fprintln(o.Writer, l)
		}
		fmt.Fprintln(o.Writer, rule)
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintln(o.Writer, rule)
	for _, l := range lines {
		bold.Fprintln(o.Writer, l)
	}
	bold.Fprintln(o.Writer, rule)
}

// WriteRule prints a separator line between records.
func (o *OutputWriter) WriteRule(width int) {
	fmt.Fprintln(o.Writer, strings.Repeat("-", width))
}

// WriteError outputs an error message to stderr. Provider errors are
// rendered with their HTTP status.
func (o *OutputWriter) WriteError(err error) {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		fmt.Fprintf(os.Stderr, "Error: provider returned HTTP %d: %s\n", gerr.Code, gerr.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// Truncate cuts a string to at most maxLen characters, never splitting a
// multi-byte rune.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}
