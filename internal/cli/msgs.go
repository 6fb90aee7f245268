package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Apply Windows tweaks through registry, shell, script and program actions"
	MsgExecShort       = "Validate and run one action"
	MsgRunShort        = "Run an action from the catalog"
	MsgValidateShort   = "Check an action without running it"
	MsgListShort       = "List the actions in the catalog"
	MsgShowShort       = "Describe one catalog action"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Show version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgCompletionLong  = "Generate the autocompletion script for winregi for the specified shell."

	// Status messages
	MsgVersionFormat = "winregi %s (commit %s, built %s)\n"

	// Error messages
	MsgErrLoadConfig  = "failed to load configuration"
	MsgErrOpenStore   = "failed to open registry store"
	MsgErrLoadCatalog = "failed to load catalog"
	MsgErrNoCommand   = "no command specified"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Read configuration from this file instead of the XDG location"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagStyles   = "Load terminal styles from this YAML file"
	MsgFlagSet      = "Override a configuration key (section.key=value), may be repeated"
	MsgFlagBackend  = "Backend: registry, powershell, batch or system"
	MsgFlagTimeout  = "Timeout in seconds for shell and script backends (0 uses the configured default)"
	MsgFlagElevated = "Treat the caller as elevated instead of probing the process token"
	MsgFlagCatalog  = "Catalog file (defaults to catalog.file from the configuration)"
	MsgFlagCategory = "Only list actions in this category"
	MsgFlagOutput   = "Configuration output format: toml or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/exec-long.txt
	msgExecLongRaw string
	MsgExecLong    = strings.TrimSpace(msgExecLongRaw)

	//go:embed msgs/exec-example.txt
	msgExecExampleRaw string
	MsgExecExample    = strings.TrimRight(msgExecExampleRaw, "\n")

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/validate-example.txt
	msgValidateExampleRaw string
	MsgValidateExample    = strings.TrimRight(msgValidateExampleRaw, "\n")
)
