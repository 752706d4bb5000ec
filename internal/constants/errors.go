package constants

// Error codes are grouped by the HTTP status they surface as:
// 40xxx bad request, 41xxx unauthenticated, 43xxx forbidden,
// 44xxx not found, 42xxx validation, 50xxx internal.

const (
	CodeSuccess = 0

	// 400 Bad Request (40xxx)
	CodeBadRequest        = 40000
	CodeInvalidJSON       = 40001
	CodeMissingParameter  = 40002
	CodeDuplicateResource = 40003
	CodeNothingToUpdate   = 40004

	// 401 Unauthorized (41xxx)
	CodeUnauthorized       = 41000
	CodeMalformedToken     = 41001
	CodeInvalidSignature   = 41002
	CodeExpiredToken       = 41003
	CodeInvalidCredentials = 41004

	// 403 Forbidden (43xxx)
	CodeForbidden        = 43000
	CodeInsufficientRole = 43001

	// 404 Not Found (44xxx)
	CodeNotFound         = 44000
	CodeResourceNotFound = 44001

	// 422 Unprocessable Entity (42xxx)
	CodeValidationFailed = 42000
	CodeInvalidDate      = 42001

	// 500 Internal Server Error (50xxx)
	CodeInternalError = 50000
	CodeStoreError    = 50001
	CodeQueueError    = 50002
)

// ErrorMessages holds the default envelope message per code
var ErrorMessages = map[int]string{
	CodeSuccess: "Success",

	CodeBadRequest:        "Bad request",
	CodeInvalidJSON:       "Invalid JSON payload",
	CodeMissingParameter:  "Required parameter missing",
	CodeDuplicateResource: "Resource already exists",
	CodeNothingToUpdate:   "Nothing to update",

	CodeUnauthorized:       "Unauthorized",
	CodeMalformedToken:     "Error in validating Tokens",
	CodeInvalidSignature:   "Error in validating Tokens",
	CodeExpiredToken:       "Token has expired",
	CodeInvalidCredentials: "Invalid credentials",

	CodeForbidden:        "Forbidden",
	CodeInsufficientRole: "You are not authorized to perform this action",

	CodeNotFound:         "Not found",
	CodeResourceNotFound: "Resource not found",

	CodeValidationFailed: "Validation error",
	CodeInvalidDate:      "Invalid date, expected YYYY-MM-DD HH:MM:SS",

	CodeInternalError: "Internal server error",
	CodeStoreError:    "Internal server error",
	CodeQueueError:    "Internal server error",
}

// GetErrorMessage returns the standard message for an error code
func GetErrorMessage(code int) string {
	if msg, exists := ErrorMessages[code]; exists {
		return msg
	}
	return "Unknown error"
}

// GetHTTPStatusFromCode returns the HTTP status for an error code
func GetHTTPStatusFromCode(code int) int {
	switch {
	case code == CodeSuccess:
		return 200
	case code >= 40000 && code < 41000:
		return 400
	case code >= 41000 && code < 42000:
		return 401
	case code >= 42000 && code < 43000:
		return 422
	case code >= 43000 && code < 44000:
		return 403
	case code >= 44000 && code < 45000:
		return 404
	default:
		return 500
	}
}

// GetCodeFromHTTPStatus maps a raw HTTP status (e.g. from echo.HTTPError) to a generic code
func GetCodeFromHTTPStatus(status int) int {
	switch status {
	case 400:
		return CodeBadRequest
	case 401:
		return CodeUnauthorized
	case 403:
		return CodeForbidden
	case 404, 405:
		return CodeNotFound
	case 422:
		return CodeValidationFailed
	default:
		return CodeInternalError
	}
}
