package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	clierrors "github.com/liftblock/fwrelease/internal/errors"
	"github.com/liftblock/fwrelease/internal/release"
	"github.com/liftblock/fwrelease/internal/textio"
)

const defaultHTMLListFile = "to_html_list.txt"

var htmlListCmd = &cobra.Command{
	Use:   "html-list [file]",
	Short: "Convert a bullet list into an HTML list",
	Long: `Read a plain bullet list ("- item" per line) and print it as a single-line
HTML unordered list, ready to paste into a catalog description.

Empty lines are skipped. The file defaults to to_html_list.txt.`,
	Example: `  fwrelease html-list
  fwrelease html-list notes.txt`,
	GroupID: GroupRelease,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultHTMLListFile
		if len(args) == 1 {
			path = args[0]
		}

		text, err := textio.ReadAll(path, cfg.Encoding)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Input,
				"cannot read "+path, "Put the list into "+defaultHTMLListFile+" or pass a file path")
		}
		fmt.Fprintln(cmd.OutOrStdout(), release.RenderHTML(bulletItems(string(text))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(htmlListCmd)
}

// bulletItems returns the non-empty lines of text with bullet markers removed.
func bulletItems(text string) []string {
	items := []string{}
	for line := range strings.Lines(text) {
		line = strings.Trim(strings.TrimRight(line, "\r\n"), "- \n")
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}
