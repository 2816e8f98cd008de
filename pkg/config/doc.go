// Package config loads typed configuration from the environment.
//
// Struct fields are described with caarlos0/env tags. Before parsing, Load
// reads dotenv files through joho/godotenv; values already present in the
// process environment win over the files.
//
//	var cfg storefront.Config
//	config.MustLoad(&cfg, config.WithEnvFiles(".env", ".env.local"))
package config
