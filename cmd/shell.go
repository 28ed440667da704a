package cmd

import (
	"github.com/spf13/cobra"
)

// shellCmd is for running text commands read from stdin
var shellCmd = &cobra.Command{
	Use:                        "shell",
	Short:                      "Run smap and smaplength text commands read from stdin, one per line",
	Run:                        runShell,
	Args:                       cobra.NoArgs,
	SuggestionsMinimumDistance: 2,
	Long: `Run text commands read from stdin, one per line. The store is loaded once.
Failed commands print "// smap error: ..." and the shell carries on.`,
	Example: `  printf 'smaplength Sequence:cTel52S\nsmap -from Sequence:cTel52S\n' | smap shell`,
}

func init() {
	RootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) {
	r, conf := newRunner(cmd)

	failed, err := r.Shell(cmd.InOrStdin())
	if err != nil {
		stderr.Fatal(err)
	}
	if conf.Verbose && failed > 0 {
		stderr.Printf("%d commands failed", failed)
	}
}
