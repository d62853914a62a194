package repository

// UserRepository defines user data operations
type UserRepository interface {
	EnsureUserExists(userID int64, username string) error
	ListUserIDs() ([]int64, error)
}

// PreferenceRepository is a per-user string key-value store
type PreferenceRepository interface {
	// Get returns found=false without error when the key is absent
	Get(userID int64, key string) (value string, found bool, err error)
	Set(userID int64, key, value string) error
	Delete(userID int64, key string) error
	ListByPrefix(userID int64, prefix string) (map[string]string, error)
	DeleteByPrefix(userID int64, prefix string) error
}
