package constants

// Client-facing "detail" messages.
const (
	MsgIncorrectCredentials   = "Incorrect email or password"
	MsgEmailRegistered        = "Email already registered"
	MsgNotAuthenticated       = "Not authenticated"
	MsgCouldNotValidate       = "Could not validate credentials"
	MsgInactiveUser           = "Inactive user"
	MsgPatientNotFound        = "Patient not found"
	MsgHealthRecordNotFound   = "Health record not found"
	MsgPatientEmailExists     = "A patient with this email already exists."
	MsgInternalServerError    = "Internal server error"
	MsgTooManyRequests        = "Too many requests"
	MsgInvalidRequestBody     = "Invalid request body"
	MsgComponentCheckTimedOut = "Component check timed out"
)
