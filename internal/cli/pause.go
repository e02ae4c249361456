package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// waitForKey keeps a console window open until a key is pressed.
// It does nothing when in is not a terminal.
func waitForKey(in io.Reader, out io.Writer) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}
	fmt.Fprint(out, "Нажмите любую клавишу...")
	defer fmt.Fprintln(out)

	state, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return
	}
	defer term.Restore(int(f.Fd()), state)

	var b [1]byte
	_, _ = f.Read(b[:])
}
