package client

import "errors"

var errTooManyRedirects = errors.New("stopped after 10 redirects")
