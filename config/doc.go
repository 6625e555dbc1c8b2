// Package config handles poster configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// Values missing from the file keep the defaults of Default.
package config
