// Package paths provides centralized path handling for logreader.
//
// It resolves the XDG base directories logreader uses:
//
//   - config: $XDG_CONFIG_HOME/logreader (config.toml)
//   - state:  $XDG_STATE_HOME/logreader (logreader.log)
//
// XDG variables are read on every call so they can be changed at runtime,
// falling back to the platform defaults of github.com/adrg/xdg.
package paths
