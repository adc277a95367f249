package server

import "errors"

var errEmptyAddress = errors.New("empty listen address")
