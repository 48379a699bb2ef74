// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Structs declare their environment bindings with `env` tags:
//
//	type PGConfig struct {
//	    ConnString string `env:"PG_CONN_URL,required"`
//	    MaxConns   int32  `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//	}
//
// Each configuration type is parsed once per process and cached, so every
// component that loads the same type observes the same values.
package config
