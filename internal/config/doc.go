// Package config loads todoheap settings from a CUE file.
//
// The file is unified with an embedded #Config schema, so every field is
// type-checked and absent fields take the schema's defaults. A missing file
// is not an error: Load returns the defaults.
//
// Example config.cue:
//
//	database:     "~/.local/share/todoheap/heaps.db"
//	min_capacity: 16
//	colors: tree: "#a6e3a1"
package config
