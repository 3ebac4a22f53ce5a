// Package render turns what fread reads into text.
//
// Records go through [Write] and [Marshal], which accept a [Format] constant
// and variadic items of any type. JSON, JSONL, YAML, and Plain work on any
// value; other formats require the items to implement specific interfaces.
// [fread.Record] implements all of them, so every format works on records.
// [WriteIter] takes an iter.Seq instead and writes items as they arrive.
//
// Trees go through [WriteTree], and [WriteResult] picks the right path for a
// [fread.Result].
//
// # Interface Design
//
// A minimal interface unlocks a format, and optional interfaces enhance the
// rendering:
//
//   - [Mappable] → Fields, ENV
//   - [Rower] → CSV, TSV, Table, HTML, Markdown (row data)
//   - [Headed] → adds column headers; required by Markdown
//   - [Lister] → List
//
// Use [IsSupported] to check at runtime whether a type implements the required
// interfaces for a given format:
//
//	if render.IsSupported[MyType](render.CSV) { ... }
//
// # Fields
//
// The default record format. Prints one "key: value" line per field with a
// blank line between records.
//
// # Table
//
// Requires [Rower]. Optional interfaces:
//
//   - [Headed] column headers
//   - [Titled] title above the table
//   - [Bordered] border style (default [BorderRounded])
//   - [Aligned] per-column alignment
//   - [Numbered] row number column
//   - [Captioned] line below the table
//   - [Truncated] max column widths with "..." truncation
//   - [Styled] per-column style functions
//
// To change table options for records, embed [fread.Record] in a struct
// that adds the methods:
//
//	type gradeRow struct{ fread.Record }
//
//	func (gradeRow) Border() render.BorderStyle { return render.BorderASCII }
//
// # Trees
//
// [WriteTree] renders a [fread.Node] as indented "<tag> text" / "</tag>"
// pairs ([TreeText]) or as its JSON or YAML structure. [TreeOptions] sets
// indentation, a depth limit, attribute display, and a tag style.
//
// # GoTemplate
//
// Use [GoTemplate] to create a parameterized format that renders each item
// using a Go [text/template] with [TemplateFuncs]:
//
//	render.Write(os.Stdout, render.GoTemplate(`{{.Get "Name"}}`), records...)
//
// # Errors
//
//   - [ErrUnsupportedFormat] unknown format string
//   - [ErrMissingInterface] items don't implement the required interface
//   - [ErrInvalidTemplate] invalid go-template syntax
package render
