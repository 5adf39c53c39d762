package constants

type APIStatus string

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"
)

// Query labels used for the database metrics.
const (
	QueryResetFlavors = "flavor_reset"
	QueryInsertFlavor = "flavor_insert"
	QueryListFlavors  = "flavor_list"
	QueryGetFlavor    = "flavor_get"
	QueryUpdateFlavor = "flavor_update"
	QueryDeleteFlavor = "flavor_delete"
)
