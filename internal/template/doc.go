// Package template renders per-site configuration from a placeholder template.
//
// A template is plain text with three placeholders, {listen}, {server_name}
// and {root}, replaced verbatim by the values of a declaration section. Any
// other brace must be doubled, so nginx blocks are written as:
//
//	server {{
//	    listen {listen};
//	    server_name {server_name};
//	    root {root};
//	}}
//
// Syntax errors (an unterminated { or a lone }) are reported when the
// template is loaded. A placeholder naming anything other than the three keys
// above is reported when a section is rendered, even if the section declares
// a field of that name.
//
// # Built-in Templates
//
// Default returns a starter template for nginx, apache or caddy, embedded in
// the binary; `sitegen template` prints it.
package template
