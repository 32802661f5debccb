// Package config provides the configuration system for asciicanvas.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← ASCIICANVAS_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Flags are applied by the caller on the returned Config; Load handles
// the lower three layers.
//
// # Sub-packages
//
//   - loader: Configuration file loading (TOML, YAML, environment variables)
package config
