// Package render turns code trees into source text.
//
// Output is deterministic: the same tree always renders to the same bytes.
// Items are separated by one blank line and nested items are indented by
// four spaces.
package render
