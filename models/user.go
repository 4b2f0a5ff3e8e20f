package models

// User represents an account known to the API.
type User struct {
	UID  int    `json:"uid"`  // UID is the numeric user id.
	Name string `json:"name"` // Name is the display name of the user.
}

// UserLogin is the session identity returned by the `welcome` endpoint.
type UserLogin struct {
	User
	LoggedIn bool `json:"logged_in"` // LoggedIn indicates whether the session cookie belongs to a valid user.
}

// IsAdmin reports whether the logged-in user is the administrator.
// The API grants the user management endpoints to the account named "admin" only.
func (u UserLogin) IsAdmin() bool {
	return u.LoggedIn && u.Name == "admin"
}
