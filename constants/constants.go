package constants

// コレクション名
const (
	CollectionUsers    = "users"
	CollectionItems    = "items"
	CollectionSessions = "sessions"
)

// セッション
const (
	SessionCookieName = "lostfound.sid"
	ContextUserKey    = "user"
	ContextSessionKey = "session_token"
	ContextRequestID  = "request_id"
	HeaderRequestID   = "X-Request-ID"
	APIPathPrefix     = "/api/"
	LoginPath         = "/login"
	HomePath          = "/"
	MinPasswordLength = 6
)

// エラーメッセージ
const (
	ErrItemNotFound        = "Item not found"
	ErrUserNotFound        = "User not found"
	ErrUnexpected          = "Unexpected error"
	ErrInvalidID           = "Invalid id"
	ErrInvalidInput        = "Invalid input"
	ErrInvalidItemType     = `Type must be either "lost" or "found"`
	ErrInvalidItemStatus   = `Status must be either "active" or "resolved"`
	ErrMissingItemFields   = "Missing required fields: name, description, location, type"
	ErrMissingAuthFields   = "Username, email, and password are required"
	ErrMissingLoginFields  = "Username and password are required"
	ErrPasswordTooShort    = "Password must be at least 6 characters"
	ErrPasswordTooLong     = "Password must be at most 72 bytes"
	ErrInvalidEmail        = "Email is invalid"
	ErrBlankProfileField   = "Username and email cannot be empty"
	ErrBlankItemField      = "Name, description, and location cannot be empty"
	ErrDuplicateUser       = "Username or email already exists"
	ErrInvalidCredentials  = "Invalid username or password"
	ErrAuthRequired        = "Authentication required"
	ErrAlreadyLoggedIn     = "Already logged in. Please logout first."
	ErrLogoutFailed        = "Failed to logout"
	ErrNotItemOwnerUpdate  = "You can only update your own items"
	ErrNotItemOwnerResolve = "You can only resolve your own items"
	ErrNotItemOwnerDelete  = "You can only delete your own items"
	ErrRouteNotFound       = "Route not found"
)
