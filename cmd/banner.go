package cmd

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

func printBanner(w io.Writer) {
	fig := figure.NewFigure("cmsaudit", "doom", true)
	fmt.Fprint(w, colorError(fig.String()))
	fmt.Fprintln(w, colorInfo("════════════════════════════════════════════════"))
	fmt.Fprintln(w, colorSuccess("    CMS fingerprint & exposure checks | authorized testing only"))
	fmt.Fprintln(w, colorInfo("════════════════════════════════════════════════"))
}
