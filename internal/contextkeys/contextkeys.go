package contextkeys

type contextKey string

// User keys the authenticated *models.User attached by the auth middleware.
const User contextKey = "user"
