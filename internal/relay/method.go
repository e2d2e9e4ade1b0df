package relay

// Method is a supported outbound HTTP verb
type Method int

const (
	MethodGet Method = iota + 1
	MethodPost
	MethodPut
	MethodDelete
)

var methodNames = map[string]Method{
	"GET":    MethodGet,
	"POST":   MethodPost,
	"PUT":    MethodPut,
	"DELETE": MethodDelete,
}

// ParseMethod matches s case-sensitively against the supported verbs
func ParseMethod(s string) (Method, error) {
	m, ok := methodNames[s]
	if !ok {
		return 0, &Error{Kind: KindUnsupportedMethod, Method: s}
	}
	return m, nil
}

// String returns the wire name of the method
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}
