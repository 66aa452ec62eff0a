package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	consts "github.com/khanhnv2901/cmsaudit/internal/shared/constants"
	"github.com/nao1215/markdown"
)

// WriteMarkdown renders a human-readable summary of r.
func WriteMarkdown(w io.Writer, r *Report) error {
	md := markdown.NewMarkdown(w)

	md.H1("CMS Audit Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   summaryRows(r),
	})
	md.PlainText("")

	md.H2("Findings")
	md.PlainText("")
	if len(r.Messages) == 0 {
		md.Tip("No findings.")
	} else {
		md.BulletList(r.Messages...)
	}

	return md.Build()
}

func summaryRows(r *Report) [][]string {
	rows := [][]string{
		{"Target", "`" + r.Target + "`"},
	}
	if r.CMS != nil {
		name := r.CMS.CMSName()
		if name == "" {
			name = "not detected"
		}
		rows = append(rows, []string{"CMS", name})
		if v := r.CMS.CMSVersion(); v != "" {
			rows = append(rows, []string{"Version", v})
		}
		rows = append(rows, []string{"Confidence", strconv.FormatFloat(float64(r.CMS.Confidence), 'f', -1, 64)})
	}
	rows = append(rows, []string{"Findings", strconv.Itoa(len(r.Messages))})
	return rows
}

// WriteMarkdownFile writes the Markdown summary of r to path.
func WriteMarkdownFile(path string, r *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), consts.DefaultDirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, consts.DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteMarkdown(f, r); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
