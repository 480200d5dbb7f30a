package session

// Parser parses one textual value and stores the result in the session
// under opt. Implementations must not retain text beyond the call.
type Parser interface {
	Parse(s *Session, opt Opt, text string) error
}

// ParseFunc adapts a plain function to the Parser interface.
type ParseFunc func(s *Session, opt Opt, text string) error

func (f ParseFunc) Parse(s *Session, opt Opt, text string) error {
	return f(s, opt, text)
}

// ElemSpec binds one element position of a set type to the option it
// fills and the parser that fills it.
type ElemSpec struct {
	Opt    Opt
	Parser Parser
}

// SetType describes how elements of one set type are parsed: the
// declared arity, the parser for each position, and an optional legacy
// parser taking the whole unsplit element when a separator shows up in
// a one-dimensional type.
type SetType struct {
	Name      string
	Dimension int
	Elem      [3]ElemSpec
	Compat    Parser
}
