package models

// ElementBody is the request body for reserving or renaming an element.
type ElementBody struct {
	Name string `json:"name"`
}

// AddUserBody is the request body for creating a user.
type AddUserBody struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// PasswordBody is the request body for changing a password.
type PasswordBody struct {
	Password string `json:"password"`
}
