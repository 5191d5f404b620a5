package common

// SessionKey is the fixed Credential Store key under which the client
// persists the serialized {access_token, refresh_token} pair.
const SessionKey = "wintakam_session"

// AuthHeaderName is the HTTP header carrying the bearer access token.
const AuthHeaderName = "Authorization"

// APIKeyHeaderName is the HTTP header carrying the project API key on every
// gateway request.
const APIKeyHeaderName = "apikey"

// PropertiesTable is the backend table holding listing rows.
const PropertiesTable = "properties"
