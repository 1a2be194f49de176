// Package symboltable implements the Wirth-style triple symbol table:
// tab (identifiers), btab (blocks) and atab (arrays), plus a display
// stack of open block indices and the current lexical level.
//
// Forward links are index-based singly-linked lists into a growable slice,
// never owning pointers, so the table can be copied or serialized without
// cycle concerns.
package symboltable

// ObjType classifies what a tab entry denotes.
type ObjType int

const (
	ObjConstant ObjType = iota
	ObjVariable
	ObjType_
	ObjProcedure
	ObjFunction
	ObjProgram
)

func (o ObjType) String() string {
	switch o {
	case ObjConstant:
		return "CONSTANT"
	case ObjVariable:
		return "VARIABLE"
	case ObjType_:
		return "TYPE"
	case ObjProcedure:
		return "PROCEDURE"
	case ObjFunction:
		return "FUNCTION"
	case ObjProgram:
		return "PROGRAM"
	default:
		return "UNKNOWN"
	}
}

// BaseType is the value domain of a tab/atab entry's `type` field.
type BaseType int

const (
	Integer BaseType = iota + 1
	Real
	Boolean
	Char
	String
	Array
	Record
	Void
	Range
)

func (b BaseType) String() string {
	switch b {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Boolean:
		return "BOOLEAN"
	case Char:
		return "CHAR"
	case String:
		return "STRING"
	case Array:
		return "ARRAY"
	case Record:
		return "RECORD"
	case Void:
		return "VOID"
	case Range:
		return "RANGE"
	default:
		return "UNKNOWN"
	}
}

// Entry is a single `tab` row.
type Entry struct {
	Name  string
	Obj   ObjType
	Type  BaseType
	Ref   int  // index into atab (or another table) for composite types
	Nrm   bool // true = normal variable, false = by-reference parameter
	Lev   int  // lexical level at insertion
	Adr   int  // offset within the block's variable area
	Link  int  // index of the previous identifier in the same block; 0 terminates

	IsParam    bool
	BlockIndex int // for PROCEDURE/FUNCTION entries: the block they open
	ConstValue any
}

// Block is a single `btab` row.
type Block struct {
	Last       int // head of this block's identifier chain
	Lpar       int
	Psze       int
	Vsze       int
	ParamCount int
}

// ArrayInfo is a single `atab` row.
type ArrayInfo struct {
	IndexType   BaseType
	ElementType BaseType
	Eref        int
	Low         int
	High        int
	ElementSize int
	Size        int
}

// reservedWord is one entry of the fixed, built-in prefix that occupies
// tab[0:UserIDStart] after initialization.
type reservedWord struct {
	name string
	obj  ObjType
	typ  BaseType
}

// reservedPrefix is the set of base types, grammar keywords and I/O
// built-ins pre-populated into every fresh Table. Its length fixes
// UserIDStart: the distilled spec's testable invariant names 29 entries,
// which this list produces exactly (5 base types + 4 I/O built-ins + 20
// grammar keywords; see DESIGN.md for why this differs from the reference
// implementation's literal 31-entry list).
var reservedPrefix = buildReservedPrefix()

func buildReservedPrefix() []reservedWord {
	words := []reservedWord{
		{"integer", ObjType_, Integer},
		{"real", ObjType_, Real},
		{"boolean", ObjType_, Boolean},
		{"char", ObjType_, Char},
		{"string", ObjType_, String},
		{"writeln", ObjProcedure, Void},
		{"readln", ObjProcedure, Void},
		{"write", ObjProcedure, Void},
		{"read", ObjProcedure, Void},
	}
	keywords := []string{
		"program", "variabel", "mulai", "selesai", "jika", "maka", "selainitu",
		"selama", "lakukan", "untuk", "ke", "turunke", "larik", "dari",
		"prosedur", "fungsi", "konstanta", "tipe", "kasus", "rekaman",
	}
	for _, kw := range keywords {
		words = append(words, reservedWord{kw, ObjType_, Void})
	}
	return words
}

// Table is the symbol table triple plus its nesting state.
type Table struct {
	Tab  []*Entry
	Btab []*Block
	Atab []*ArrayInfo

	Display []int
	Level   int

	nextAdr     int
	UserIDStart int
	nextUserID  int

	constValues map[string]any
}

// New builds a Table with the reserved prefix installed and no open block.
func New() *Table {
	t := &Table{
		Level:       -1,
		constValues: map[string]any{},
	}
	for i, rw := range reservedPrefix {
		link := 0
		if i > 0 {
			link = i - 1
		}
		t.Tab = append(t.Tab, &Entry{Name: rw.name, Obj: rw.obj, Type: rw.typ, Nrm: true, Link: link})
	}
	t.UserIDStart = len(t.Tab)
	t.nextUserID = t.UserIDStart
	return t
}

// EnterBlock pushes a new block, appends it to the display stack and
// increments the level. Returns the new block's index.
func (t *Table) EnterBlock() int {
	t.Level++
	idx := len(t.Btab)
	t.Btab = append(t.Btab, &Block{})
	t.Display = append(t.Display, idx)
	return idx
}

// LeaveBlock pops the display stack and decrements the level. The level
// never goes below 0: the outermost (program) block is never actually
// removed from Display, matching the reference implementation's guard.
func (t *Table) LeaveBlock() {
	if t.Level > 0 {
		t.Level--
		t.Display = t.Display[:len(t.Display)-1]
	}
}

// EnterIdentifier allocates a new user tab entry in the currently open
// block, chaining it onto that block's identifier list.
func (t *Table) EnterIdentifier(name string, obj ObjType, typ BaseType, size int) int {
	idx := t.nextUserID
	t.nextUserID++

	adr := 0
	if obj == ObjVariable {
		adr = t.nextAdr
		t.nextAdr += size
	}

	blockIdx := t.Display[t.Level]
	block := t.Btab[blockIdx]
	prevLast := block.Last

	link := 0
	if prevLast >= t.UserIDStart {
		link = prevLast
	}

	for len(t.Tab) <= idx {
		t.Tab = append(t.Tab, nil)
	}
	t.Tab[idx] = &Entry{
		Name: name, Obj: obj, Type: typ, Nrm: true,
		Lev: t.Level, Adr: adr, Link: link,
	}

	block.Last = idx
	if obj == ObjVariable {
		block.Vsze += size
	}
	return idx
}

// SetConstValue records the literal value for a constant's tab entry.
func (t *Table) SetConstValue(name string, value any) {
	t.constValues[name] = value
}

// GetConstantValue looks up a previously recorded constant value.
func (t *Table) GetConstantValue(name string) (any, bool) {
	v, ok := t.constValues[name]
	return v, ok
}

// FindIdentifier searches from the current level outward to the global
// level, walking each open block's link chain, then falls back to the
// reserved prefix. Returns -1 if name is not found anywhere.
func (t *Table) FindIdentifier(name string) int {
	for level := t.Level; level >= 0; level-- {
		blockIdx := t.Display[level]
		idx := t.Btab[blockIdx].Last
		for idx >= t.UserIDStart {
			entry := t.Tab[idx]
			if entry != nil && entry.Name == name {
				return idx
			}
			if entry == nil {
				break
			}
			idx = entry.Link
		}
	}
	for i := 0; i < t.UserIDStart && i < len(t.Tab); i++ {
		if t.Tab[i] != nil && t.Tab[i].Name == name {
			return i
		}
	}
	return -1
}

// SetRef records idx's composite-type reference (an atab index for an
// array, or another tab index for a declared type alias).
func (t *Table) SetRef(idx, ref int) {
	t.Tab[idx].Ref = ref
}

// SetBlockIndex records which block a PROCEDURE/FUNCTION entry opens.
func (t *Table) SetBlockIndex(idx, blockIndex int) {
	t.Tab[idx].BlockIndex = blockIndex
}

// SetParam marks idx as a formal parameter, by-value or by-reference.
func (t *Table) SetParam(idx int, byRef bool) {
	t.Tab[idx].IsParam = true
	t.Tab[idx].Nrm = !byRef
}

// Entry returns the tab row at idx.
func (t *Table) Entry(idx int) *Entry {
	if idx < 0 || idx >= len(t.Tab) {
		return nil
	}
	return t.Tab[idx]
}

// CurrentBlock returns the index of the innermost open block.
func (t *Table) CurrentBlock() int {
	return t.Display[t.Level]
}

// Array returns the atab row at idx.
func (t *Table) Array(idx int) *ArrayInfo {
	if idx < 0 || idx >= len(t.Atab) {
		return nil
	}
	return t.Atab[idx]
}

// EnterArray appends an atab entry describing an array's index range and
// element type, returning its index.
func (t *Table) EnterArray(indexType, elementType BaseType, low, high, elementSize int) int {
	size := (high - low + 1) * elementSize
	t.Atab = append(t.Atab, &ArrayInfo{
		IndexType: indexType, ElementType: elementType,
		Low: low, High: high, ElementSize: elementSize, Size: size,
	})
	return len(t.Atab) - 1
}
