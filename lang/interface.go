package lang

// Interface is a group of remote methods.
type Interface struct {
	defBase

	Name string

	// Exc is the exception raised by failing methods, or nil.
	Exc *Message

	Methods []*Method
}

// NewInterface creates an interface bound to exc, which may be nil.
func NewInterface(name string, exc *Message) *Interface {
	return &Interface{Name: name, Exc: exc}
}

// Kind returns KindInterface.
func (*Interface) Kind() TypeKind { return KindInterface }

// Identifier returns the interface's name.
func (i *Interface) Identifier() string { return i.Name }

func (*Interface) sealed() {}

// AddMethod appends a method and returns it.
func (i *Interface) AddMethod(name string, result Type, args ...Arg) *Method {
	m := &Method{Name: name, Result: result, Args: args}
	i.Methods = append(i.Methods, m)
	return m
}

// Method is a single interface method.
type Method struct {
	Name   string
	Result Type
	Args   []Arg

	// IsPost marks a method that mutates server state and must be sent as
	// a POST request.
	IsPost bool
}

// IsTerminal reports whether the method returns data rather than another
// interface to chain calls on.
func (m *Method) IsTerminal() bool {
	return !IsInterface(m.Result)
}

// Arg is a named method argument.
type Arg struct {
	Name string
	Type Type
}
