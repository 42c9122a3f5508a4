package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/aretw0/jot/pkg/render"
)

// textView renders the note list on w, styled when w is a terminal.
func textView(w io.Writer) *render.View {
	return render.NewView(&render.WriterSurface{W: w}, render.TextFormatter{
		Styled:     isTerminal(w),
		DeleteHint: "jot delete %d",
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
