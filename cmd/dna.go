package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jjtimmons/smap/internal/smap"
	"github.com/jjtimmons/smap/internal/store"
	"github.com/spf13/cobra"
)

// dnaCmd is for assembling the DNA of an object from its tree
var dnaCmd = &cobra.Command{
	Use:                        "dna [object]",
	Short:                      "Assemble an object's DNA from the objects mapped into it",
	Run:                        runDNA,
	Args:                       cobra.ExactArgs(1),
	SuggestionsMinimumDistance: 2,
	Long: `Assemble the DNA of an object, or an interval of it, from every object mapped
into it that has DNA. Reverse strand objects are complemented. Disagreeing
bases are written as IUPAC ambiguity codes and logged. Positions no object
covers are written as n.

The assembly is written in FASTA.`,
	Example: "  smap dna Sequence:CHROMOSOME_I --coords 1000,2000",
}

// objectsCmd is for listing the objects mapped around an object
var objectsCmd = &cobra.Command{
	Use:                        "objects [object]",
	Short:                      "List the objects mapped around an object and the DNA each contributes",
	Run:                        runObjects,
	Args:                       cobra.ExactArgs(1),
	SuggestionsMinimumDistance: 2,
}

func init() {
	dnaCmd.Flags().IntSliceP("coords", "c", nil, "x1,x2 interval of the object, all of it when unset")
	dnaCmd.Flags().Bool("strict", false, "fail on the first disagreeing base")

	objectsCmd.Flags().IntSliceP("coords", "c", nil, "x1,x2 interval of the object to build the map over")

	RootCmd.AddCommand(dnaCmd)
	RootCmd.AddCommand(objectsCmd)
}

func runDNA(cmd *cobra.Command, args []string) {
	r, conf := newRunner(cmd)
	key := parseKey(args[0])
	x1, x2 := intervalFlag(cmd, "coords")
	strict, _ := cmd.Flags().GetBool("strict")

	ctx, err := smap.Build(r.Store, key, x1, x2, &smap.Options{Verbose: conf.Verbose})
	if err != nil {
		stderr.Fatal(err)
	}
	defer ctx.Release()

	conflicts := 0
	dna, ok := ctx.AssembleDNA(func(c smap.Conflict) bool {
		conflicts++
		stderr.Printf("%s disagrees at %d: %c then %c", c.Key, c.Position, c.Existing, c.New)
		return !strict
	})
	if !ok {
		if strict && conflicts > 0 {
			stderr.Fatalf("failed to assemble %s: %d disagreeing bases", key, conflicts)
		}
		stderr.Fatalf("failed to assemble %s: no DNA", key)
	}

	if x1 == 0 && x2 == 0 {
		x1, x2 = 1, ctx.Length()
	}
	desc := fmt.Sprintf("%d..%d", x1, x2)
	if err := store.WriteFASTA(cmd.OutOrStdout(), string(key), desc, dna, conf.FASTA.LineWidth); err != nil {
		stderr.Fatal(err)
	}
}

func runObjects(cmd *cobra.Command, args []string) {
	r, conf := newRunner(cmd)
	x1, x2 := intervalFlag(cmd, "coords")

	ctx, err := smap.Build(r.Store, parseKey(args[0]), x1, x2, &smap.Options{Verbose: conf.Verbose})
	if err != nil {
		stderr.Fatal(err)
	}
	defer ctx.Release()

	out := cmd.OutOrStdout()
	for _, k := range ctx.Objects() {
		fmt.Fprintln(out, k)
	}

	frags := ctx.Provenance()
	if len(frags) == 0 {
		return
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintf(w, "dna\tstrand\tlength\tsegments\n")
	for _, f := range frags {
		segs := make([]string, len(f.Segments))
		for i, s := range f.Segments {
			segs[i] = s.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", f.Key, f.Strand, f.Length, strings.Join(segs, " "))
	}
	w.Flush()
}
