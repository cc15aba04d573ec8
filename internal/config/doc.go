// Package config loads and validates application configuration.
//
// Configuration is assembled once at process start into an explicit Config
// struct and passed into component constructors; there is no ambient global
// settings state. Values come from an optional config file and from
// environment variables with the POMO_ prefix, environment taking precedence.
package config
