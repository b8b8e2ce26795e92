package domain

type CredentialsKind string

const (
	CredentialsAPI CredentialsKind = "api"
	CredentialsSDK CredentialsKind = "sdk"
)

// MerchantCredentials selects which merchant identity a call is made under.
// Records are keyed by an optional user group; selection picks the most
// specific group match first, then falls back to the group-less default by
// descending priority.
type MerchantCredentials struct {
	ID             string
	Kind           CredentialsKind
	Name           string
	UserGroupID    string
	Priority       int
	MerchantNumber string
}
