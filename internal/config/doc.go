// Package config holds the paths and web-server settings of a sitegen run.
//
// The configuration is provisioned by the operator as a YAML file, by default
// /etc/sitegen/config.yaml, and is read once at startup. The resulting Config
// value is passed down to the pipeline; no package keeps path state of its own.
//
// Example config.yaml (all keys optional, these are the defaults):
//
//	output_dir: /etc/nginx/conf.d
//	template: /opt/nginx-conf-maker/template.conf
//	declarations: /opt/nginx-conf-maker/params.ini
//	site_root: /storage/www
//	server: nginx
//	sudo: true
//	command_timeout: 60s
//
// # Servers
//
// The server key selects which test and reload commands the driver package
// runs. Use the constants (ServerNginx, ServerApache, ServerCaddy) instead of
// string literals.
//
// # Usage
//
//	cfg, err := config.Load("") // default path, defaults if absent
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
