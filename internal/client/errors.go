package client

import "errors"

var errMissingDependencies = errors.New("client app requires engine, observer and config")
