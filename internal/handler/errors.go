package handler

// Generic HTTP error messages for client responses. They never carry internal error
// details; tests reference these constants too.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgInvalidItemID         = "Invalid item id"
	ErrMsgInvalidLimit          = "limit must be a positive integer"
	ErrMsgUnknownEventType      = "Unknown event type %q"
)

// Success messages
const (
	MsgAccountResetSuccess = "Account reset successfully"
)

// Operation names used in logs
const (
	OpEnsureProfile = "Ensure profile"
	OpGetProfile    = "Get profile"
	OpGetRank       = "Get rank"
	OpGetSeals      = "Get seals"
	OpSelectPath    = "Select path"
	OpGetIdentities = "Get identities"
	OpGetToday      = "Get today"
	OpToggleTask    = "Toggle task"
	OpToggleSubtask = "Toggle subtask"
	OpGetPrices     = "Get shop prices"
	OpBuyItem       = "Buy item"
	OpUseItem       = "Use item"
	OpGetInventory  = "Get inventory"
	OpAdvanceDay    = "Advance day"
	OpResetAccount  = "Reset account"
	OpGetHistory    = "Get history"
)

// Route parameter names
const (
	ParamUserID     = "user_id"
	ParamIdentityID = "identityID"
	ParamTaskID     = "taskID"
	ParamSubtaskID  = "subtaskID"
	ParamEventType  = "type"
	ParamLimit      = "limit"
)
