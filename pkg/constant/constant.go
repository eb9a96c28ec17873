package constant

const (
	DefaultTokenType = "bearer"

	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
	TokenKindVerify  = "verify"

	// AccountIDLocal is the fiber.Ctx locals key holding the authenticated
	// account id resolved by the auth middleware.
	AccountIDLocal = "account_id"

	MinPasswordLength = 8
	MinNameLength     = 2
	MinTaskTitleLen   = 3
)
