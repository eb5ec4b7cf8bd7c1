package domain

// Location is the raw document returned by the geolocation provider. It is
// passed through to the caller untouched.
type Location map[string]any
