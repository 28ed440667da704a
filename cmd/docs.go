package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootPage = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

const childPage = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// page is the position of a command's doc page
type page struct {
	title    string
	navOrder int
	root     bool
}

// pages maps the base Markdown file name to its page
var pages = map[string]page{
	"smap":         {"smap", 0, true},
	"smap_map":     {"map", 0, false},
	"smap_length":  {"length", 1, false},
	"smap_dump":    {"dump", 2, false},
	"smap_objects": {"objects", 3, false},
	"smap_dna":     {"dna", 4, false},
	"smap_query":   {"query", 5, false},
	"smap_shell":   {"shell", 6, false},
}

// docsCmd is for writing the Markdown docs of every command
var docsCmd = &cobra.Command{
	Use:    "docs [dir]",
	Short:  "Write Markdown docs for every command",
	Run:    runDocs,
	Args:   cobra.MaximumNArgs(1),
	Hidden: true,
}

func init() {
	RootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) {
	dir := "./docs"
	if len(args) > 0 {
		dir = args[0]
	}

	if err := doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler); err != nil {
		stderr.Fatal(err)
	}
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	p, ok := pages[baseName(filename)]
	switch {
	case !ok:
		return ""
	case p.root:
		return fmt.Sprintf(rootPage, p.title, p.navOrder)
	}
	return fmt.Sprintf(childPage, p.title, "smap", p.navOrder)
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	base := baseName(filename)
	if base == "smap" {
		return "/"
	}
	return base
}

func baseName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}
