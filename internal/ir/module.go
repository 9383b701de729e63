package ir

// Module owns every IR value ever created during lowering: type
// definitions, globals, and functions, plus the id counters that keep
// value and block ids unique module-wide. Nothing here is ever cloned;
// client code (the IR builder, the WAT generator, the pass manager)
// holds pointers/indices into these slices.
type Module struct {
	TypeDefs  []*TypeDef
	Globals   []*Global
	Functions []*Function

	nextValueID int
	nextBlockID int
}

func NewModule() *Module {
	return &Module{}
}

// NextValueID returns a fresh value id, suitable for passing as the
// nextID callback to Block's instruction-emitting methods.
func (m *Module) NextValueID() int {
	m.nextValueID++
	return m.nextValueID
}

func (m *Module) NextBlockID() int {
	m.nextBlockID++
	return m.nextBlockID
}

func (m *Module) AddTypeDef(td *TypeDef) *TypeDef {
	m.TypeDefs = append(m.TypeDefs, td)
	return td
}

func (m *Module) FindTypeDef(name string) *TypeDef {
	for _, td := range m.TypeDefs {
		if td.Name == name {
			return td
		}
	}
	return nil
}

func (m *Module) AddGlobal(g *Global) *Global {
	m.Globals = append(m.Globals, g)
	return g
}

func (m *Module) AddFunction(f *Function) *Function {
	m.Functions = append(m.Functions, f)
	return f
}

func (m *Module) FindFunction(name string) *Function {
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// UsesMemory reports whether any instruction in the module touches
// load/store/alloca, the condition under which the WAT generator emits
// a `(memory $mem 1)` section.
func (m *Module) UsesMemory() bool {
	for _, f := range m.Functions {
		for _, b := range f.Blocks {
			for _, instr := range b.Instructions {
				switch instr.Op {
				case OpLoad, OpStore, OpAlloca:
					return true
				}
			}
		}
	}
	return false
}
