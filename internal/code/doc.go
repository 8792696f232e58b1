// Package code defines the intermediate tree the generator builds before
// any text is produced: expressions, statements and declarations of the
// emitted implementations, grouped into fragments and code units.
//
// Keeping generated code as data lets the count formula and impl headers be
// inspected and evaluated directly; package render turns a tree into text.
package code
