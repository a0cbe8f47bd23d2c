package status

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// Decode failure reasons. The message text ends up verbatim in the body of
// the 400 response, so it must stay human-readable.
var (
	ErrBadRequest           = NewError(BadRequest, "bad request")
	ErrMalformedRequestLine = NewError(BadRequest, "malformed request line")
	ErrUnsupportedMethod    = NewError(BadRequest, "unsupported method")
	ErrMalformedHeader      = NewError(BadRequest, "malformed header")
	ErrChunkedNotSupported  = NewError(BadRequest, "chunked not supported")
	ErrInvalidContentLength = NewError(BadRequest, "invalid content-length")

	// ErrHandlerFailure stands in for a panic escaping a request handler. It
	// follows the same reject-and-close path as a malformed request, which is
	// the only mandatory behavior: the process must survive.
	ErrHandlerFailure = NewError(BadRequest, "handler failure")

	ErrInternalServerError = NewError(InternalServerError, "internal server error")
)
