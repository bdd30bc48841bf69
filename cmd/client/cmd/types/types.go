package types

type contextKey string

// ClientAppKey carries the *client.App through the cobra command context.
const ClientAppKey contextKey = "clientApp"
