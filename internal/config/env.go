package config

import "os"

// Env holds the process environment signals this tool reacts to. It is read
// once at startup and passed down, so components never call os.Getenv.
type Env struct {
	UserAgent       string // npm_config_user_agent
	Debug           bool   // DEBUG
	NodeEnv         string // NODE_ENV
	AuditLogEnabled bool   // AUDIT_LOG_ENABLED
}

// EnvFromOS reads Env from the current process environment.
func EnvFromOS() Env {
	return EnvFromLookup(os.LookupEnv)
}

// EnvFromLookup builds Env from an arbitrary lookup function.
func EnvFromLookup(lookup func(string) (string, bool)) Env {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	_, audit := lookup("AUDIT_LOG_ENABLED")
	return Env{
		UserAgent:       get("npm_config_user_agent"),
		Debug:           get("DEBUG") != "",
		NodeEnv:         get("NODE_ENV"),
		AuditLogEnabled: audit,
	}
}

// AuditAllowed reports whether the audit log may be written in this
// environment.
func (e Env) AuditAllowed() bool {
	if e.NodeEnv == "test" && !e.AuditLogEnabled {
		return false
	}
	return true
}
