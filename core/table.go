package core

// Table is the flat, display-ready projection of a panel's visible rows.
// Every resource package knows how to build its own; the export adapters and
// the console renderer only ever consume this shape. Exporters must emit one
// output row per Row, in order — rows are never silently dropped.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}
