// Package fread reads delimited-text and markup-tree files into a small set
// of canonical in-memory shapes.
//
// A [Reader] claims a file-extension convention through Handles and parses
// matching files through Read. Two readers ship with the package:
//
//   - [CSVReader] → a sequence of [Record] values, one per data row
//   - [XMLReader] → a single [Node] tree root
//
// A [Dispatcher] holds an ordered list of readers and routes a path to the
// first one that claims it:
//
//	d := fread.Default()
//	res, err := d.ReadFile("grades.csv")
//	if err != nil { ... }
//	if recs, ok := res.Records(); ok { ... }
//
// Registration order is authoritative. When two readers claim the same path
// the one registered first wins.
//
// # Results
//
// [Result] is a two-variant union. Use [Result.Kind], the typed accessors,
// or [Result.Visit] to branch on the shape without type assertions.
//
// # Delimited text
//
// The first line is the header. Each later non-empty line becomes a
// [Record] keyed by the header. Short rows are padded with empty values and
// cells past the header are kept in [Record.Rest]. Input is UTF-8 by
// default (a leading byte order mark is dropped); use [WithEncoding] for
// legacy single-byte files.
//
// # Markup
//
// Documents are parsed strictly. Namespaced names use {uri}local notation.
// [Node.Select] evaluates XPath 1.0 expressions against a parsed tree.
//
// # Errors
//
//   - [ErrInvalidArgument]: empty or non-text path, invalid XPath
//   - [ErrUnsupportedFormat]: no registered reader claims the path
//   - [ErrParse]: malformed input, see [ParseError]
//   - [ErrDecode]: bytes that are not valid text in the expected encoding
//
// Missing or unreadable files surface the *fs.PathError from the os
// package unchanged, so errors.Is(err, fs.ErrNotExist) works.
package fread
