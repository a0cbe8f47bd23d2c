package status

type (
	Code   uint16
	Status string
)

// Status codes the server itself produces. Handlers are free to return any
// other integer code; it will be rendered as-is.
const (
	OK                  Code = 200
	BadRequest          Code = 400
	NotFound            Code = 404
	InternalServerError Code = 500
)

// Text resolves a code into its reason phrase. Codes outside the table
// resolve to "OK". That default is deliberate and relied upon by tests:
// an unknown code still produces a well-formed status line, and changing
// the fallback would change the wire bytes for every custom code.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case InternalServerError:
		return "Internal Server Error"
	default:
		return "OK"
	}
}
