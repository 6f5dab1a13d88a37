package logreader

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Print the lines of a file that match a wildcard mask"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgConfigShort     = "Print the effective configuration"
	MsgSyntaxShort     = "Describe the mask syntax"

	// Diagnostics
	MsgFailedOpen  = "Failed to open file \"%s\"."
	MsgFailedParse = "Failed to parse mask \"%s\"."
	MsgFlagError   = "%v."
	MsgFlagDashTip = "Put -- before a mask that starts with \"-\"."

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Config file (default $XDG_CONFIG_HOME/logreader/config.toml)"
	MsgFlagColor      = "Color diagnostics: auto, always or never"
	MsgFlagBufferSize = "Line buffer size in bytes, longer lines are truncated"
	MsgFlagFormat     = "Output format: toml or yaml"
	MsgFlagTemplate   = "Print a commented config file template"
	MsgFlagManDir     = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)

// helpTopics holds the markdown topics served by "help <topic>"
//
//go:embed topics/*.md
var helpTopics embed.FS
