package utils

import (
	"os"

	"github.com/arsham/figurine/figurine"
)

// PrintStyledText prints a styled text banner to the terminal.
func PrintStyledText(text string) error {
	return figurine.Write(os.Stdout, text, "ANSI Regular.flf")
}
