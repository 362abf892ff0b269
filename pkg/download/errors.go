package download

import (
	"errors"
	"fmt"
)

var ErrTooLarge = errors.New("download exceeds size limit")

type HttpStatusError struct {
	StatusCode int
}

func ErrUnexpectedHTTPStatus(statusCode int) error {
	return HttpStatusError{StatusCode: statusCode}
}

var _ error = &HttpStatusError{}

func (c HttpStatusError) Error() string {
	return fmt.Sprintf("Status code %d", c.StatusCode)
}
