package errors

// Client-facing messages, one per status in the error taxonomy.
const (
	MsgBadRequest       = "Bad request"
	MsgForbidden        = "Forbidden"
	MsgNotFound         = "Not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgUnprocessable    = "Unprocessable"
	MsgUpstream         = "Upstream error"
	MsgInternal         = "Internal server error"
)
