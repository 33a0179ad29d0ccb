package lazybinary

// BlockBuilder accumulates the values of a column.
//
// Builders are not safe for concurrent use. A builder must not be used after
// its Build method was called.
type BlockBuilder interface {
	// Type returns the type of values accepted by the builder.
	Type() Type

	// Len returns the number of positions appended so far.
	Len() int

	// AppendNull appends a null value.
	AppendNull()

	// Build returns the block holding all the appended values.
	Build() Block
}

// PrimitiveBuilder accumulates scalar values.
type PrimitiveBuilder struct {
	typ    Type
	values []Value
}

func newPrimitiveBuilder(typ Type, capacity int) *PrimitiveBuilder {
	return &PrimitiveBuilder{typ: typ, values: make([]Value, 0, capacity)}
}

func (b *PrimitiveBuilder) Type() Type { return b.typ }

func (b *PrimitiveBuilder) Len() int { return len(b.values) }

func (b *PrimitiveBuilder) AppendNull() { b.values = append(b.values, Value{}) }

// Append appends v to the builder. It panics if v is neither null nor of the
// kind of the builder type.
func (b *PrimitiveBuilder) Append(v Value) {
	if !v.IsNull() && v.Kind() != b.typ.Kind() {
		panic("cannot append " + v.Kind().String() + " value to builder of type " + b.typ.String())
	}
	b.values = append(b.values, v)
}

func (b *PrimitiveBuilder) Build() Block {
	return &PrimitiveBlock{typ: b.typ, values: b.values}
}

// ArrayBuilder accumulates lists. Lists are appended by opening an entry with
// BeginEntry, appending to its element builder, then committing it.
type ArrayBuilder struct {
	typ      *ArrayType
	offsets  []int32
	nulls    []bool
	elements BlockBuilder
	open     bool
}

func newArrayBuilder(typ *ArrayType, capacity int) *ArrayBuilder {
	offsets := make([]int32, 1, capacity+1)
	return &ArrayBuilder{
		typ:      typ,
		offsets:  offsets,
		nulls:    make([]bool, 0, capacity),
		elements: typ.Elem.NewBuilder(capacity),
	}
}

func (b *ArrayBuilder) Type() Type { return b.typ }

func (b *ArrayBuilder) Len() int { return len(b.nulls) }

func (b *ArrayBuilder) AppendNull() {
	b.checkClosed()
	b.offsets = append(b.offsets, int32(b.elements.Len()))
	b.nulls = append(b.nulls, true)
}

// BeginEntry opens a new list. It panics if another entry is still open.
func (b *ArrayBuilder) BeginEntry() *ArrayEntry {
	b.checkClosed()
	b.open = true
	return &ArrayEntry{builder: b}
}

func (b *ArrayBuilder) Build() Block {
	b.checkClosed()
	return &ArrayBlock{
		typ:      b.typ,
		offsets:  b.offsets,
		nulls:    b.nulls,
		elements: b.elements.Build(),
	}
}

func (b *ArrayBuilder) checkClosed() {
	if b.open {
		panic("array builder has an uncommitted entry")
	}
}

// ArrayEntry is a list under construction.
type ArrayEntry struct {
	builder   *ArrayBuilder
	committed bool
}

// Elements returns the builder receiving the elements of the list.
func (e *ArrayEntry) Elements() BlockBuilder { return e.builder.elements }

// Commit closes the list. Calling Commit more than once has no effect.
func (e *ArrayEntry) Commit() {
	if e.committed {
		return
	}
	e.committed = true
	b := e.builder
	b.open = false
	b.offsets = append(b.offsets, int32(b.elements.Len()))
	b.nulls = append(b.nulls, false)
}

// MapBuilder accumulates key/value associations.
type MapBuilder struct {
	typ     *MapType
	offsets []int32
	nulls   []bool
	keys    BlockBuilder
	values  BlockBuilder
	open    bool
}

func newMapBuilder(typ *MapType, capacity int) *MapBuilder {
	return &MapBuilder{
		typ:     typ,
		offsets: make([]int32, 1, capacity+1),
		nulls:   make([]bool, 0, capacity),
		keys:    typ.Key.NewBuilder(capacity),
		values:  typ.Value.NewBuilder(capacity),
	}
}

func (b *MapBuilder) Type() Type { return b.typ }

func (b *MapBuilder) Len() int { return len(b.nulls) }

func (b *MapBuilder) AppendNull() {
	b.checkClosed()
	b.offsets = append(b.offsets, int32(b.keys.Len()))
	b.nulls = append(b.nulls, true)
}

// BeginEntry opens a new map. It panics if another entry is still open.
func (b *MapBuilder) BeginEntry() *MapEntry {
	b.checkClosed()
	b.open = true
	return &MapEntry{builder: b}
}

func (b *MapBuilder) Build() Block {
	b.checkClosed()
	return &MapBlock{
		typ:     b.typ,
		offsets: b.offsets,
		nulls:   b.nulls,
		keys:    b.keys.Build(),
		values:  b.values.Build(),
	}
}

func (b *MapBuilder) checkClosed() {
	if b.open {
		panic("map builder has an uncommitted entry")
	}
}

// MapEntry is a map under construction. Keys and values are appended in
// pairs, the i-th key is associated with the i-th value.
type MapEntry struct {
	builder   *MapBuilder
	committed bool
}

func (e *MapEntry) Keys() BlockBuilder { return e.builder.keys }

func (e *MapEntry) Values() BlockBuilder { return e.builder.values }

// Commit closes the map. A key or value left without its counterpart is
// paired with a null. Calling Commit more than once has no effect.
func (e *MapEntry) Commit() {
	if e.committed {
		return
	}
	e.committed = true
	b := e.builder
	b.open = false
	for b.values.Len() < b.keys.Len() {
		b.values.AppendNull()
	}
	for b.keys.Len() < b.values.Len() {
		b.keys.AppendNull()
	}
	b.offsets = append(b.offsets, int32(b.keys.Len()))
	b.nulls = append(b.nulls, false)
}

// RowBuilder accumulates structs, keeping one builder per field.
type RowBuilder struct {
	typ    *RowType
	nulls  []bool
	fields []BlockBuilder
	open   bool
}

func newRowBuilder(typ *RowType, capacity int) *RowBuilder {
	fields := make([]BlockBuilder, len(typ.Fields))
	for i, f := range typ.Fields {
		fields[i] = f.Type.NewBuilder(capacity)
	}
	return &RowBuilder{
		typ:    typ,
		nulls:  make([]bool, 0, capacity),
		fields: fields,
	}
}

func (b *RowBuilder) Type() Type { return b.typ }

func (b *RowBuilder) Len() int { return len(b.nulls) }

func (b *RowBuilder) AppendNull() {
	b.checkClosed()
	for _, f := range b.fields {
		f.AppendNull()
	}
	b.nulls = append(b.nulls, true)
}

// BeginEntry opens a new row. Each field builder of the entry must receive
// exactly one value or null before Commit is called. It panics if another
// entry is still open.
func (b *RowBuilder) BeginEntry() *RowEntry {
	b.checkClosed()
	b.open = true
	return &RowEntry{builder: b}
}

func (b *RowBuilder) Build() Block {
	b.checkClosed()
	fields := make([]Block, len(b.fields))
	for i, f := range b.fields {
		fields[i] = f.Build()
	}
	return &RowBlock{typ: b.typ, nulls: b.nulls, fields: fields}
}

func (b *RowBuilder) checkClosed() {
	if b.open {
		panic("row builder has an uncommitted entry")
	}
}

// RowEntry is a row under construction.
type RowEntry struct {
	builder   *RowBuilder
	committed bool
}

// NumFields returns the number of field builders of the entry.
func (e *RowEntry) NumFields() int { return len(e.builder.fields) }

// Field returns the builder of field i. It is only valid until Commit.
func (e *RowEntry) Field(i int) BlockBuilder { return e.builder.fields[i] }

// Commit closes the row. Fields which did not receive a value are set to null
// so every field block keeps one position per row, which allows committing
// an entry abandoned half way on a decoding error. Calling Commit more than
// once has no effect.
func (e *RowEntry) Commit() {
	if e.committed {
		return
	}
	e.committed = true
	b := e.builder
	b.open = false
	rows := len(b.nulls) + 1
	for _, f := range b.fields {
		for f.Len() < rows {
			f.AppendNull()
		}
	}
	b.nulls = append(b.nulls, false)
}

var (
	_ BlockBuilder = (*PrimitiveBuilder)(nil)
	_ BlockBuilder = (*ArrayBuilder)(nil)
	_ BlockBuilder = (*MapBuilder)(nil)
	_ BlockBuilder = (*RowBuilder)(nil)
)
