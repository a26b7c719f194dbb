package auth

// Claims representa la información extraída del token.
// Role la afirma el proveedor de identidad; el core no la infiere.
type Claims struct {
	UserID string
	Email  string
	Role   string
}
