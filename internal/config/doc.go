// Package config provides configuration types for the procstream bridge.
package config
