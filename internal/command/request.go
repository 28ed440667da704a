// Package command runs the text commands of the smap query language:
//
//	smap -from <class:object> [-coords x1 x2] [-to <class:object>]
//	smap -dump [-coords x1 x2] [-area a1 a2] -from <class:object>
//	smaplength <class:object>
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jjtimmons/smap/internal/store"
	"github.com/mattn/go-shellwords"
)

// ErrUsage is returned for commands that cannot be parsed.
var ErrUsage = errors.New("usage: smap -from class:object [-coords x1 x2] [-to class:object] | smap -dump [-coords x1 x2] [-area a1 a2] -from class:object | smaplength class:object")

// Verb is the command being run.
type Verb string

const (
	// Map maps an interval of one object onto another
	Map Verb = "smap"
	// Length reports the length of an object
	Length Verb = "smaplength"
)

// Request is one parsed command.
type Request struct {
	Verb Verb

	// From is the object being mapped, or the root of a dump
	From store.Key

	// To is the object mapped onto. Empty means the top of From's tree
	To store.Key

	// X1 and X2 are the coordinates on From, zero for its whole length
	X1, X2 int

	// Dump asks for the whole map rather than one interval
	Dump bool

	// AreaStart and AreaEnd bound a dump
	AreaStart, AreaEnd int
}

// Tokenize splits a command line into words, honouring quotes.
func Tokenize(line string) ([]string, error) {
	words, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split %q: %w", line, err)
	}
	return words, nil
}

// Parse reads a Request from the words of a command.
func Parse(words []string) (*Request, error) {
	if len(words) == 0 {
		return nil, ErrUsage
	}

	switch Verb(strings.ToLower(words[0])) {
	case Length:
		if len(words) != 2 {
			return nil, ErrUsage
		}
		k, err := store.ParseKey(words[1])
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrUsage)
		}
		return &Request{Verb: Length, From: k}, nil
	case Map:
		return parseMap(words[1:])
	}
	return nil, fmt.Errorf("unknown command %q: %w", words[0], ErrUsage)
}

func parseMap(args []string) (*Request, error) {
	req := &Request{Verb: Map}

	// ints reads the n integers after the option at i
	ints := func(i, n int) ([]int, error) {
		if i+n >= len(args) {
			return nil, fmt.Errorf("%s needs %d values: %w", args[i], n, ErrUsage)
		}
		vals := make([]int, n)
		for j := range vals {
			v, err := strconv.Atoi(args[i+1+j])
			if err != nil {
				return nil, fmt.Errorf("%s: %q is not a coordinate: %w", args[i], args[i+1+j], ErrUsage)
			}
			vals[j] = v
		}
		return vals, nil
	}

	// key reads the object after the option at i
	key := func(i int) (store.Key, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s needs an object: %w", args[i], ErrUsage)
		}
		k, err := store.ParseKey(args[i+1])
		if err != nil {
			return "", fmt.Errorf("%s: %v: %w", args[i], err, ErrUsage)
		}
		return k, nil
	}

	var hasArea bool
	for i := 0; i < len(args); i++ {
		var err error
		switch strings.ToLower(args[i]) {
		case "-from":
			req.From, err = key(i)
			i++
		case "-to":
			req.To, err = key(i)
			i++
		case "-coords":
			var v []int
			if v, err = ints(i, 2); err == nil {
				req.X1, req.X2 = v[0], v[1]
			}
			i += 2
		case "-area":
			var v []int
			if v, err = ints(i, 2); err == nil {
				req.AreaStart, req.AreaEnd = v[0], v[1]
				hasArea = true
			}
			i += 2
		case "-dump":
			req.Dump = true
		default:
			err = fmt.Errorf("unknown option %q: %w", args[i], ErrUsage)
		}
		if err != nil {
			return nil, err
		}
	}

	if req.From == "" {
		return nil, fmt.Errorf("-from is required: %w", ErrUsage)
	}
	if req.Dump && req.To != "" {
		return nil, fmt.Errorf("-dump cannot take -to: %w", ErrUsage)
	}
	if hasArea && !req.Dump {
		return nil, fmt.Errorf("-area needs -dump: %w", ErrUsage)
	}
	return req, nil
}
