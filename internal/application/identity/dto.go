package identity

// SeedInput describes the administrator account to create
type SeedInput struct {
	Username    string
	Password    string
	DisplayName string
	Role        string
}

// SeedResult summarises a seed run. It is printed as JSON on success.
type SeedResult struct {
	UserKey  string `json:"userKey"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
