package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal into w, or writes it as is when raw.
// A rendering failure falls back to the raw markdown.
func printMarkdown(w io.Writer, md string, raw bool) {
	if raw {
		fmt.Fprint(w, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Warning: cannot render markdown: %v\n", err)
	fmt.Fprint(w, md)
}
