// Package display renders server replies for the remote client.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	coordColor = color.New(color.FgCyan)
	whiteColor = color.New(color.FgBlue, color.Bold)
	blackColor = color.New(color.FgRed, color.Bold)
)

// RenderBoard prints the server's ASCII board with colored pieces
func RenderBoard(w io.Writer, asciiBoard string) {
	lines := strings.Split(asciiBoard, "\n")
	last := len(lines) - 1

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		isFileLine := i == 0 || i == last

		for _, char := range line {
			switch {
			case char >= 'a' && char <= 'h' && isFileLine:
				coordColor.Fprintf(w, "%c", char)
			case char >= '1' && char <= '8':
				coordColor.Fprintf(w, "%c", char)
			case char >= 'A' && char <= 'Z':
				whiteColor.Fprintf(w, "%c", char)
			case char >= 'a' && char <= 'z':
				blackColor.Fprintf(w, "%c", char)
			default:
				fmt.Fprintf(w, "%c", char)
			}
		}
		fmt.Fprintln(w)
	}
}

// ColorForTurn returns a colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "w" {
		return whiteColor.Sprint("White")
	}
	return blackColor.Sprint("Black")
}
