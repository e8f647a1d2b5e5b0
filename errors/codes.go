package errors

// ErrorCode identifies the category of an AppError
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_FORBIDDEN         ErrorCode = 1003
	ErrorCode_TOO_MANY_REQUESTS ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1005

	// Deployment
	ErrorCode_CONFIGURATION ErrorCode = 2000

	// Integrations
	ErrorCode_INTEGRATION_COMPLETION_FAILED ErrorCode = 3000
	ErrorCode_INTEGRATION_MAIL_FAILED       ErrorCode = 3001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                       "HTTP_OK",
	ErrorCode_INTERNAL:                      "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:              "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                     "NOT_FOUND",
	ErrorCode_FORBIDDEN:                     "FORBIDDEN",
	ErrorCode_TOO_MANY_REQUESTS:             "TOO_MANY_REQUESTS",
	ErrorCode_INVALID_PAYLOAD:               "INVALID_PAYLOAD",
	ErrorCode_CONFIGURATION:                 "CONFIGURATION",
	ErrorCode_INTEGRATION_COMPLETION_FAILED: "INTEGRATION_COMPLETION_FAILED",
	ErrorCode_INTEGRATION_MAIL_FAILED:       "INTEGRATION_MAIL_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
