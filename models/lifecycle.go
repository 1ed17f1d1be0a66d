package models

// LifecycleStatus is the uniform entity lifecycle state used across the
// platform instead of ad hoc isActive/isDeleted boolean combinations.
type LifecycleStatus string

const (
	StatusActive   LifecycleStatus = "active"
	StatusInactive LifecycleStatus = "inactive"
	StatusDeleted  LifecycleStatus = "deleted"
)

// IsValidLifecycleStatus reports whether s is a known lifecycle state.
func IsValidLifecycleStatus(s LifecycleStatus) bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}
