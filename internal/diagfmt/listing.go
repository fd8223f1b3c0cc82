package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"cminus/internal/diag"
)

// Listing writes one `line <n>: <message>` entry per diagnostic, the format
// the compiler listing has always used. Notes are not shown.
func Listing(w io.Writer, bag *diag.Bag) error {
	bw := bufio.NewWriter(w)
	for _, d := range bag.Items() {
		fmt.Fprintf(bw, "line %d: %s\n", d.Primary.Line, d.Message)
	}
	return bw.Flush()
}
