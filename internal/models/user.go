package models

// Identity is the claim payload a client posts to POST /jwt and that the
// credential cookie carries back on every guarded request.
type Identity struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
	// IDToken proves the identity when an OIDC issuer is configured.
	IDToken string `json:"idToken,omitempty"`
}
