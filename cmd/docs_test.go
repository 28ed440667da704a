package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_filePrepender(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			"root",
			"docs/smap.md",
			"---\nlayout: default\ntitle: smap\nnav_order: 0\nhas_children: true\npermalink: /\n---\n",
		},
		{
			"child",
			"docs/smap_dna.md",
			"---\nlayout: default\ntitle: dna\nparent: smap\nnav_order: 4\n---\n",
		},
		{
			"unknown",
			"docs/smap_docs.md",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filePrepender(tt.filename))
		})
	}
}

func Test_linkHandler(t *testing.T) {
	assert.Equal(t, "/", linkHandler("smap.md"))
	assert.Equal(t, "smap_map", linkHandler("smap_map.md"))
}
