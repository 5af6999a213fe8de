package config

import "os"

// AuthConfig controls the optional admin login that protects task
// mutations.  Auth is active only when both JWTSecret and AdminPassword are
// set; otherwise every route is public, which suits a local example.
type AuthConfig struct {
    JWTSecret     string // secret used to sign access tokens
    AdminUser     string // admin username
    AdminPassword string // admin password in plain text; hashed at startup
    AccessTTLMin  int    // access token lifetime in minutes
    BcryptCost    int    // bcrypt cost for hashing the admin password
}

func LoadAuthConfig() AuthConfig {
    return AuthConfig{
        JWTSecret:     os.Getenv("JWT_SECRET"),
        AdminUser:     getenv("ADMIN_USER", "admin"),
        AdminPassword: os.Getenv("ADMIN_PASSWORD"),
        AccessTTLMin:  envInt("ACCESS_TOKEN_TTL_MIN", 60),
        BcryptCost:    envInt("BCRYPT_COST", 10),
    }
}

// Enabled reports whether protected routes require a bearer token.
func (c AuthConfig) Enabled() bool {
    return c.JWTSecret != "" && c.AdminPassword != ""
}
