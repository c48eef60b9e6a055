package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	promptColor = color.New(color.FgYellow)
	Info        = color.New(color.FgCyan)
	Success     = color.New(color.FgGreen)
	Warn        = color.New(color.FgYellow)
	Failure     = color.New(color.FgRed)
)

// Prompt returns a colored prompt string
func Prompt(text string) string {
	return promptColor.Sprint(text + " > ")
}

// PrettyPrintJSON prints formatted JSON
func PrettyPrintJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Failure.Fprintf(w, "Error formatting JSON: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

// SetPlain turns every client color off or back on
func SetPlain(plain bool) {
	color.NoColor = plain
}
