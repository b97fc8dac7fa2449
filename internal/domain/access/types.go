package access

type AccessState string

const (
	AccessTrial   AccessState = "trial"
	AccessFull    AccessState = "full"
	AccessLimited AccessState = "limited"
	AccessLocked  AccessState = "locked"
)

// Allows reports whether the state grants product access at all.
func Allows(state AccessState) bool {
	return state != AccessLocked
}
