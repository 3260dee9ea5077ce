package template

import (
	"embed"
	"fmt"
)

//go:embed defaults/*.conf
var defaultTemplates embed.FS

// Default returns the built-in starter template for a web server.
func Default(server string) (string, error) {
	content, err := defaultTemplates.ReadFile(fmt.Sprintf("defaults/%s.conf", server))
	if err != nil {
		return "", fmt.Errorf("no built-in template for server: %s", server)
	}
	return string(content), nil
}
