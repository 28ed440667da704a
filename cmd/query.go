package cmd

import (
	"github.com/spf13/cobra"
)

// queryCmd is for running one command of the text query language
var queryCmd = &cobra.Command{
	Use:                        "query -- [command]",
	Short:                      "Run one smap or smaplength text command",
	Run:                        runQuery,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Long: `Run one command of the text query language. The command follows "--" so its
single dash options are passed through untouched:

  smap -from <class:object> [-coords x1 x2] [-to <class:object>]
  smap -dump [-coords x1 x2] [-area a1 a2] -from <class:object>
  smaplength <class:object>`,
	Example: "  smap query -- smap -from Sequence:cTel52S -coords 1 100",
}

// lengthCmd is for printing the length of objects
var lengthCmd = &cobra.Command{
	Use:                        "length [object] ... [objectN]",
	Short:                      "Print the length of objects, spliced when they have exons",
	Run:                        runLength,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"smaplength"},
}

func init() {
	RootCmd.AddCommand(queryCmd)
	RootCmd.AddCommand(lengthCmd)
}

func runQuery(cmd *cobra.Command, args []string) {
	r, _ := newRunner(cmd)
	if err := r.Exec(args); err != nil {
		stderr.Fatal(err)
	}
}

func runLength(cmd *cobra.Command, args []string) {
	r, _ := newRunner(cmd)
	for _, a := range args {
		if err := r.Exec([]string{"smaplength", a}); err != nil {
			stderr.Fatal(err)
		}
	}
}
