package common

// CommonFlags is the flag set shared by every wit subcommand through
// the command group.
type CommonFlags struct {
	Format string `flag:"format" metavar:"yaml|json" help:"Output format of documents. It can be yaml or json."`
}

// Flags returns the default CommonFlags.
func Flags() CommonFlags {
	return CommonFlags{
		Format: "yaml",
	}
}
