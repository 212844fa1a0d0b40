package cliflags

import (
	"github.com/spf13/pflag"

	"github.com/wataki/wataki-go/pkg/models"
)

func ListFlags(options *models.ListParams) *pflag.FlagSet {
	flagset := pflag.NewFlagSet("List settings", pflag.ContinueOnError)
	flagset.IntVar(&options.Limit, "limit", options.Limit, "Limit the number of results returned")
	flagset.StringVar(&options.Cursor, "cursor", options.Cursor, "Cursor of the page to fetch, as printed by the previous page")
	return flagset
}

func ObservabilityFlags(params *models.ObservabilityParams) *pflag.FlagSet {
	flagset := pflag.NewFlagSet("Report window", pflag.ContinueOnError)
	flagset.Var(TimeFlag(&params.Since), "since", "Start of the window (RFC3339 or a duration ago, e.g. 24h)")
	flagset.Var(TimeFlag(&params.Until), "until", "End of the window (RFC3339 or a duration ago)")
	flagset.StringVar(&params.InstanceID, "instance", params.InstanceID, "Only report on this instance")
	flagset.StringVar(&params.Bucket, "bucket", params.Bucket, "Time series bucket: hour or day")
	flagset.IntVar(&params.Limit, "limit", params.Limit, "Limit the number of rows returned")
	return flagset
}
