package response

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// Buffer pool for JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return &bytes.Buffer{}
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns buffer to pool unless it grew past 64KB
func putBuffer(buf *bytes.Buffer) {
	const maxBufferSize = 64 * 1024
	if buf.Cap() < maxBufferSize {
		bufferPool.Put(buf)
	}
}

// Envelope is the uniform body of every response
type Envelope struct {
	Status   bool   `json:"status"`
	Message  string `json:"message"`
	Response any    `json:"response"`
}

// FieldError describes a single failed validation rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func write(c echo.Context, code int, env Envelope) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(env); err != nil {
		return err
	}

	if rid := constants.GetRequestID(c); rid != "" {
		c.Response().Header().Set(constants.HeaderRequestID, rid)
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	c.Response().WriteHeader(code)
	_, err := c.Response().Write(buf.Bytes())
	return err
}

// Success writes a 200 envelope
func Success(c echo.Context, message string, payload any) error {
	return write(c, http.StatusOK, Envelope{
		Status:   true,
		Message:  message,
		Response: payload,
	})
}

// Fail writes a failure envelope with an explicit HTTP status
func Fail(c echo.Context, httpStatus int, message string, detail any) error {
	return write(c, httpStatus, Envelope{
		Status:   false,
		Message:  message,
		Response: detail,
	})
}

// FailWithCode writes a failure envelope using the standard message for code
func FailWithCode(c echo.Context, code int, detail any) error {
	return Fail(c, constants.GetHTTPStatusFromCode(code), constants.GetErrorMessage(code), detail)
}

// FailWithCodeAndMessage writes a failure envelope with a custom message
func FailWithCodeAndMessage(c echo.Context, code int, message string, detail any) error {
	return Fail(c, constants.GetHTTPStatusFromCode(code), message, detail)
}

// Internal writes the generic 500 envelope; error details stay in the logs
func Internal(c echo.Context) error {
	return FailWithCode(c, constants.CodeInternalError,
		"There is some issue with our services, please try again later")
}

// ValidationFailed writes a 422 envelope listing the failed fields
func ValidationFailed(c echo.Context, errs []FieldError) error {
	return FailWithCode(c, constants.CodeValidationFailed, errs)
}
