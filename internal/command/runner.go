package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jjtimmons/smap/internal/smap"
	"github.com/jjtimmons/smap/internal/store"
)

// Runner executes commands against a store and writes their output.
type Runner struct {
	// Store is the database queried
	Store store.Store

	// Schema names the tags read. DefaultSchema is used when nil
	Schema *store.Schema

	// Out receives command output
	Out io.Writer

	// Dump picks the sections printed by smap -dump
	Dump smap.DumpOptions

	// Verbose logs objects left out of each map
	Verbose bool
}

// Run parses and executes one line. Blank lines and // comments are ignored.
func (r *Runner) Run(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "//") {
		return nil
	}

	words, err := Tokenize(line)
	if err != nil {
		return err
	}
	return r.Exec(words)
}

// Exec executes a command already split into words.
func (r *Runner) Exec(words []string) error {
	req, err := Parse(words)
	if err != nil {
		return err
	}
	return r.Do(req)
}

// Do executes a parsed Request.
func (r *Runner) Do(req *Request) error {
	switch {
	case req.Verb == Length:
		return r.length(req)
	case req.Dump:
		return r.dump(req)
	}
	return r.mapInterval(req)
}

// Shell runs every line read from in. Errors are written to Out as comments
// and do not stop the shell. It returns the number of failed commands.
func (r *Runner) Shell(in io.Reader) (int, error) {
	failed := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := r.Run(scanner.Text()); err != nil {
			failed++
			if _, werr := fmt.Fprintf(r.Out, "// smap error: %v\n", err); werr != nil {
				return failed, werr
			}
		}
	}
	return failed, scanner.Err()
}

// mapInterval prints SMAP <to> y1 y2 x1 x2 <status>.
func (r *Runner) mapInterval(req *Request) error {
	to := req.To
	if to == "" {
		to = smap.FindRoot(r.Store, r.Schema, req.From)
	}

	ctx, err := smap.Build(r.Store, to, 0, 0, r.options())
	if err != nil {
		return err
	}
	defer ctx.Release()

	res, err := ctx.MapInterval(req.From, req.X1, req.X2)
	if err != nil {
		if errors.Is(err, smap.ErrNotFound) {
			return fmt.Errorf("%s does not map onto %s: %w", req.From, to, err)
		}
		return err
	}

	_, err = fmt.Fprintf(r.Out, "SMAP %s %d %d %d %d %s\n", to, res.Y1, res.Y2, res.X1, res.X2, res.Status)
	return err
}

// dump prints the whole map built around From.
func (r *Runner) dump(req *Request) error {
	opts := r.options()
	opts.AreaStart, opts.AreaEnd = req.AreaStart, req.AreaEnd

	ctx, err := smap.Build(r.Store, req.From, req.X1, req.X2, opts)
	if err != nil {
		return err
	}
	defer ctx.Release()

	return ctx.Dump(r.Out, r.Dump)
}

// length prints SMAPLENGTH <object> <length>.
func (r *Runner) length(req *Request) error {
	n, err := smap.ObjectLength(r.Store, r.Schema, req.From)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.Out, "SMAPLENGTH %s %d\n", req.From, n)
	return err
}

func (r *Runner) options() *smap.Options {
	return &smap.Options{Schema: r.Schema, Verbose: r.Verbose}
}
