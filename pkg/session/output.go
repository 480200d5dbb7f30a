package session

// Output selects the listing format of the session.
type Output int

const (
	OutputPlain Output = iota
	OutputSave
	OutputXML
	OutputJSON
)

func (o Output) String() string {
	switch o {
	case OutputSave:
		return "save"
	case OutputXML:
		return "xml"
	case OutputJSON:
		return "json"
	default:
		return "plain"
	}
}
