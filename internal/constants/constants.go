package constants

// Session
const (
	SessionCookieName = "request_board_session"
	ContextKeyUserID  = "user_id"
	ContextKeySession = "board_session"
	ContextKeyRequest = "request"
)

// Storage keys. Durable keys live in the KV table, session keys in the
// session store.
const (
	StorageKeyRequests       = "requests"
	StorageKeyUsers          = "users"
	StorageKeyUser           = "user"
	StorageKeyRememberMeUser = "rememberMeUser"
	StorageKeyCurrentUser    = "currentUser"
	StorageKeyAdminSession   = "adminSession"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	// DefaultAdminSecret is used when no admin secret is configured.
	DefaultAdminSecret = "admin123"

	// UnknownUserName is shown wherever a user reference does not resolve.
	UnknownUserName = "Unknown"

	MaxAIDrafts = 10

	// RecentActivityDays bounds the "recent" bucket of the admin analytics.
	RecentActivityDays = 30

	TopPerformersLimit = 3
)
