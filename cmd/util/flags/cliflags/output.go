package cliflags

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/wataki/wataki-go/cmd/util/flags"
	"github.com/wataki/wataki-go/cmd/util/output"
)

// OutputFormatFlags are the flags of commands that print instances, chats,
// messages or reports and can render them as a table.
func OutputFormatFlags(format *output.OutputOptions) *pflag.FlagSet {
	flagset := pflag.NewFlagSet("Output Format", pflag.ContinueOnError)

	flagset.Var(flags.OutputFormatFlag(&format.Format), "output",
		fmt.Sprintf(`How to print the results (one of %q)`, output.AllFormats))
	flagset.BoolVar(&format.Pretty, "pretty", format.Pretty,
		`Indent json and yaml output.`)
	flagset.BoolVar(&format.HideHeader, "hide-header", format.HideHeader,
		`Leave out the table header row, e.g. for piping into scripts.`)
	flagset.BoolVar(&format.NoStyle, "no-style", format.NoStyle,
		`Print the table without borders or colours.`)
	flagset.BoolVar(&format.Wide, "wide", format.Wide,
		`Show long IDs, message text and URLs in full instead of truncating them.`)

	return flagset
}

// OutputNonTabularFormatFlags are for commands whose result is a single
// nested record that has no table form, such as an instance description or a
// created webhook.
func OutputNonTabularFormatFlags(format *output.NonTabularOutputOptions) *pflag.FlagSet {
	flagset := pflag.NewFlagSet("Output Format", pflag.ContinueOnError)

	flagset.Var(flags.NonTabularFormatFlag(&format.Format), "output",
		fmt.Sprintf(`How to print the record (one of %q)`, output.NonTabularFormats))
	flagset.BoolVar(&format.Pretty, "pretty", format.Pretty,
		`Indent json and yaml output.`)
	return flagset
}
