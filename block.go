package lazybinary

// Block is an immutable column of values of a single type.
type Block interface {
	// Type returns the type of values in the block.
	Type() Type

	// Len returns the number of positions in the block.
	Len() int

	// IsNull reports whether the value at position i is null.
	IsNull(i int) bool
}

// PrimitiveBlock is a column of scalar values.
type PrimitiveBlock struct {
	typ    Type
	values []Value
}

func (b *PrimitiveBlock) Type() Type { return b.typ }

func (b *PrimitiveBlock) Len() int { return len(b.values) }

func (b *PrimitiveBlock) IsNull(i int) bool { return b.values[i].IsNull() }

// Value returns the value at position i.
func (b *PrimitiveBlock) Value(i int) Value { return b.values[i] }

// ArrayBlock is a column of lists. The elements of every list are stored
// contiguously in a single element block.
type ArrayBlock struct {
	typ      *ArrayType
	offsets  []int32
	nulls    []bool
	elements Block
}

func (b *ArrayBlock) Type() Type { return b.typ }

func (b *ArrayBlock) Len() int { return len(b.nulls) }

func (b *ArrayBlock) IsNull(i int) bool { return b.nulls[i] }

// Elements returns the element block and the range of positions holding the
// elements of the list at position i.
func (b *ArrayBlock) Elements(i int) (elements Block, offset, length int) {
	start, end := b.offsets[i], b.offsets[i+1]
	return b.elements, int(start), int(end - start)
}

// MapBlock is a column of key/value associations. The keys and values of
// every entry are stored contiguously in two parallel blocks.
type MapBlock struct {
	typ     *MapType
	offsets []int32
	nulls   []bool
	keys    Block
	values  Block
}

func (b *MapBlock) Type() Type { return b.typ }

func (b *MapBlock) Len() int { return len(b.nulls) }

func (b *MapBlock) IsNull(i int) bool { return b.nulls[i] }

// Entries returns the key and value blocks and the range of positions holding
// the entries of the map at position i.
func (b *MapBlock) Entries(i int) (keys, values Block, offset, length int) {
	start, end := b.offsets[i], b.offsets[i+1]
	return b.keys, b.values, int(start), int(end - start)
}

// RowBlock is a column of structs. Each field is stored in its own block
// holding one position per row, including null rows.
type RowBlock struct {
	typ    *RowType
	nulls  []bool
	fields []Block
}

func (b *RowBlock) Type() Type { return b.typ }

func (b *RowBlock) Len() int { return len(b.nulls) }

func (b *RowBlock) IsNull(i int) bool { return b.nulls[i] }

// NumFields returns the number of fields of each row.
func (b *RowBlock) NumFields() int { return len(b.fields) }

// Field returns the block holding values of field i. The value of field i in
// row r is at position r of the returned block.
func (b *RowBlock) Field(i int) Block { return b.fields[i] }

var (
	_ Block = (*PrimitiveBlock)(nil)
	_ Block = (*ArrayBlock)(nil)
	_ Block = (*MapBlock)(nil)
	_ Block = (*RowBlock)(nil)
)
