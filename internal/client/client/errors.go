package client

import "errors"

// ErrSyncFailed wraps every failure of a remote call: transport errors,
// non-2xx responses and undecodable bodies alike.
var ErrSyncFailed = errors.New("sync failed")
