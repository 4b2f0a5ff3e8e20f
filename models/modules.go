package models

// ReservedModules maps a module identifier to the display name it is reserved for.
type ReservedModules map[string]string

// Clone returns an independent copy of the map. A nil map clones into an empty one.
func (rm ReservedModules) Clone() ReservedModules {
	clone := make(ReservedModules, len(rm))
	for k, v := range rm {
		clone[k] = v
	}
	return clone
}

// ModulesPayload is the body of a successful `GET modules` response.
type ModulesPayload struct {
	ReservedModules ReservedModules `json:"reserved_modules"`
}
