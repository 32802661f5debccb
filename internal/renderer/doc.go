// Package renderer turns a canvas into its bordered text form and draws
// it onto a terminal backend.
//
// The text form frames the grid with '-' rows above and below and '|' at
// both ends of every row:
//
//	-------
//	|xxx  |
//	|  x  |
//	-------
//
// Render and WriteTo produce identical bytes, so a saved file matches
// what the REPL prints.
package renderer
