package constants

const (
	MsgInvalidJSON     = "Request body must be a JSON object"
	MsgInvalidFlavorID = "Flavor id must be a positive integer"
	MsgFlavorNotFound  = "Flavor not found"
	MsgDatabaseError   = "Database error"
	MsgTooManyRequests = "Too many requests"
	MsgInternalError   = "Internal Server Error"
)
