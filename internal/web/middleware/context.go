package middleware

// contextKey is a private type for context keys in this package
type contextKey string
