package config

// Server names accepted by the server key.
const (
	ServerNginx  = "nginx"
	ServerApache = "apache"
	ServerCaddy  = "caddy"
)

// ValidServers returns all supported web servers
func ValidServers() []string {
	return []string{ServerNginx, ServerApache, ServerCaddy}
}

// IsValidServer checks if the given server name is supported
func IsValidServer(name string) bool {
	for _, valid := range ValidServers() {
		if name == valid {
			return true
		}
	}
	return false
}
