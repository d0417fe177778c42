package config

import "errors"

// ErrInvalidWorkerThreadLimit is returned by Config.Check when
// WorkerThreadLimit is zero (a server configured with zero workers can
// never serve a request).
var ErrInvalidWorkerThreadLimit = errors.New("config: worker thread limit must be greater than zero")
