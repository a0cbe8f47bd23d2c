package method

type Method uint8

const (
	Unknown Method = iota
	GET
	POST
	PUT
	DELETE
	PATCH
	OPTIONS
	HEAD

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods. So real number of methods is lower by 1
	Count = iota - 1
)

// List contains all the served HTTP methods, sorted by their integer value.
// Unknown is not included, so in order to index the List, you must subtract 1 first.
var List = []Method{GET, POST, PUT, DELETE, PATCH, OPTIONS, HEAD}

// Parse recognizes a method token. The match is exact and case-sensitive, as
// method tokens are defined to be uppercase on the wire. Anything else,
// including methods the server does not serve (e.g. TRACE, CONNECT), maps
// to Unknown.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		if str == "GET" {
			return GET
		} else if str == "PUT" {
			return PUT
		}
	case 4:
		if str == "POST" {
			return POST
		} else if str == "HEAD" {
			return HEAD
		}
	case 5:
		if str == "PATCH" {
			return PATCH
		}
	case 6:
		if str == "DELETE" {
			return DELETE
		}
	case 7:
		if str == "OPTIONS" {
			return OPTIONS
		}
	}

	return Unknown
}

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case POST:
		return "POST"
	case PUT:
		return "PUT"
	case DELETE:
		return "DELETE"
	case PATCH:
		return "PATCH"
	case OPTIONS:
		return "OPTIONS"
	case HEAD:
		return "HEAD"
	default:
		return "UNKNOWN"
	}
}
