package errors

// ErrorCode identifies an application error category in API responses
type ErrorCode int32

const (
	ErrorCode_HTTP_OK           ErrorCode = 0
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1006

	ErrorCode_MEETING_NOT_FOUND  ErrorCode = 2000
	ErrorCode_BRIEFING_NOT_FOUND ErrorCode = 2001

	ErrorCode_QUEUE_UNAVAILABLE ErrorCode = 3000
	ErrorCode_ENQUEUE_FAILED    ErrorCode = 3001

	ErrorCode_AI_PROVIDER_FAILED     ErrorCode = 4000
	ErrorCode_AI_PROVIDER_RATELIMIT  ErrorCode = 4001
	ErrorCode_ENRICHMENT_FAILED      ErrorCode = 4002
	ErrorCode_INTEGRATION_CACHE_FAIL ErrorCode = 4003

	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 5000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 5001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                "OK",
	ErrorCode_INTERNAL:               "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:       "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:              "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:         "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:      "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:        "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:        "INVALID_PAYLOAD",
	ErrorCode_MEETING_NOT_FOUND:      "MEETING_NOT_FOUND",
	ErrorCode_BRIEFING_NOT_FOUND:     "BRIEFING_NOT_FOUND",
	ErrorCode_QUEUE_UNAVAILABLE:      "QUEUE_UNAVAILABLE",
	ErrorCode_ENQUEUE_FAILED:         "ENQUEUE_FAILED",
	ErrorCode_AI_PROVIDER_FAILED:     "AI_PROVIDER_FAILED",
	ErrorCode_AI_PROVIDER_RATELIMIT:  "AI_PROVIDER_RATELIMIT",
	ErrorCode_ENRICHMENT_FAILED:      "ENRICHMENT_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAIL: "INTEGRATION_CACHE_FAIL",
	ErrorCode_DB_CONNECTION_FAILED:   "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:        "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
