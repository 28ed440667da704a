package cmd

import (
	"github.com/jjtimmons/smap/config"
	"github.com/jjtimmons/smap/internal/command"
	"github.com/jjtimmons/smap/internal/smap"
	"github.com/jjtimmons/smap/internal/store"
	"github.com/spf13/cobra"
)

// mapCmd is for mapping an interval of one object onto another
var mapCmd = &cobra.Command{
	Use:                        "map [object]",
	Short:                      "Map an interval of an object onto another object",
	Run:                        runMap,
	Args:                       cobra.ExactArgs(1),
	SuggestionsMinimumDistance: 2,
	Long: `Map an interval of an object onto another object in the same tree. Without
--to the interval is mapped onto the top of the object's tree.

Prints: SMAP <to> y1 y2 x1 x2 <status>
where y1 y2 are the mapped coordinates and x1 x2 the part of the
interval that mapped.`,
	Example: "  smap map Sequence:cTel52S --coords 1,100 --to Sequence:CHROMOSOME_I",
}

// dumpCmd is for printing the map built around an object
var dumpCmd = &cobra.Command{
	Use:                        "dump [object]",
	Short:                      "Print every object mapped around an object",
	Run:                        runDump,
	Args:                       cobra.ExactArgs(1),
	SuggestionsMinimumDistance: 2,
}

func init() {
	mapCmd.Flags().IntSliceP("coords", "c", nil, "x1,x2 interval of the object, all of it when unset")
	mapCmd.Flags().StringP("to", "t", "", "object to map onto, the top of the tree when unset")

	dumpCmd.Flags().IntSliceP("coords", "c", nil, "x1,x2 interval of the object to build the map over")
	dumpCmd.Flags().IntSliceP("area", "a", nil, "a1,a2 window of the map to include children from")
	dumpCmd.Flags().Bool("raw", false, "print every object's fields in full")

	RootCmd.AddCommand(mapCmd)
	RootCmd.AddCommand(dumpCmd)
}

func runMap(cmd *cobra.Command, args []string) {
	r, _ := newRunner(cmd)

	req := &command.Request{Verb: command.Map, From: parseKey(args[0])}
	req.X1, req.X2 = intervalFlag(cmd, "coords")
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		req.To = parseKey(to)
	}

	if err := r.Do(req); err != nil {
		stderr.Fatal(err)
	}
}

func runDump(cmd *cobra.Command, args []string) {
	r, _ := newRunner(cmd)
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		r.Dump.Raw = true
	}

	req := &command.Request{Verb: command.Map, Dump: true, From: parseKey(args[0])}
	req.X1, req.X2 = intervalFlag(cmd, "coords")
	req.AreaStart, req.AreaEnd = intervalFlag(cmd, "area")

	if err := r.Do(req); err != nil {
		stderr.Fatal(err)
	}
}

// dumpOptions picks the dump sections from the settings.
func dumpOptions(conf *config.Config) smap.DumpOptions {
	return smap.DumpOptions{
		Segments:   conf.Dump.Segments,
		Mismatches: conf.Dump.Mismatches,
		Raw:        conf.Dump.Raw,
	}
}

// parseKey reads a class:object argument.
func parseKey(s string) store.Key {
	k, err := store.ParseKey(s)
	if err != nil {
		stderr.Fatal(err)
	}
	return k
}

// intervalFlag reads a two value flag, zeros when it is unset.
func intervalFlag(cmd *cobra.Command, name string) (int, int) {
	v, err := cmd.Flags().GetIntSlice(name)
	if err != nil {
		stderr.Fatalf("failed to parse %s flag: %v", name, err)
	}
	switch len(v) {
	case 0:
		return 0, 0
	case 2:
		return v[0], v[1]
	}
	stderr.Fatalf("--%s takes two values, eg --%s 1,100", name, name)
	return 0, 0
}
