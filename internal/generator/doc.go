// Package generator renders a site.Index into the output tree.
//
// A build runs as a fixed sequence of named stages (see stage_names.go).
// Pages are written into a staging directory next to the output directory and
// the staging directory replaces the output only after every stage succeeded,
// so a failed build leaves the previous site untouched.
package generator
