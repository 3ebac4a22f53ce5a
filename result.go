package fread

// Kind identifies which shape a [Result] holds.
type Kind int

const (
	KindNone Kind = iota
	KindRecords
	KindTree
)

func (k Kind) String() string {
	switch k {
	case KindRecords:
		return "records"
	case KindTree:
		return "tree"
	default:
		return "none"
	}
}

// Result holds exactly one of a record sequence or a tree root. The zero
// value is KindNone and is only ever returned alongside an error.
type Result struct {
	kind    Kind
	records []Record
	tree    *Node
}

// RecordsResult wraps a record sequence. A nil slice becomes an empty one.
func RecordsResult(records []Record) Result {
	if records == nil {
		records = []Record{}
	}
	return Result{kind: KindRecords, records: records}
}

// TreeResult wraps a tree root.
func TreeResult(root *Node) Result {
	return Result{kind: KindTree, tree: root}
}

// Kind reports which variant is set.
func (r Result) Kind() Kind { return r.kind }

// Records returns the record sequence and true when r holds records.
func (r Result) Records() ([]Record, bool) {
	return r.records, r.kind == KindRecords
}

// Tree returns the root node and true when r holds a tree.
func (r Result) Tree() (*Node, bool) {
	return r.tree, r.kind == KindTree
}

// Visit calls exactly one of onRecords or onTree depending on the variant.
// Visiting the zero Result is a no-op.
func (r Result) Visit(onRecords func([]Record) error, onTree func(*Node) error) error {
	switch r.kind {
	case KindRecords:
		return onRecords(r.records)
	case KindTree:
		return onTree(r.tree)
	default:
		return nil
	}
}
