package media

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wataki/wataki-go/cmd/util"
	"github.com/wataki/wataki-go/cmd/util/flags/cliflags"
	"github.com/wataki/wataki-go/cmd/util/hook"
	"github.com/wataki/wataki-go/cmd/util/output"
)

var instanceFlag string

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "media",
		Short:             "Upload and download media attachments.",
		PersistentPreRunE: hook.AfterParentPreRun(hook.ClientPreRunHooks),
	}
	cmd.PersistentFlags().StringVar(&instanceFlag, "instance", "", "The instance owning the media (defaults to the configured instance)")
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newDescribeCmd())
	cmd.AddCommand(newDownloadCmd())
	return cmd
}

func newUploadCmd() *cobra.Command {
	opts := output.NonTabularOutputOptions{Format: output.YAMLFormat}
	uploadCmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file, printing the media object to reference in messages.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, []string{instanceFlag})
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			f, err := os.Open(args[0])
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			defer f.Close()

			res, err := util.GetAPIClient(ctx).Media().Upload(ctx, instanceID, f.Name(), f)
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to upload %s: %w", args[0], err), 1)
			}
			if err = output.OutputOneNonTabular(cmd, opts, res); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	uploadCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&opts))
	return uploadCmd
}

func newDescribeCmd() *cobra.Command {
	opts := output.NonTabularOutputOptions{Format: output.YAMLFormat}
	describeCmd := &cobra.Command{
		Use:   "describe <media-id>",
		Short: "Get the metadata of a media object.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, []string{instanceFlag})
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			res, err := util.GetAPIClient(ctx).Media().Get(ctx, instanceID, args[0])
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("could not get media %s: %w", args[0], err), 1)
			}
			if err = output.OutputOneNonTabular(cmd, opts, res); err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	describeCmd.Flags().AddFlagSet(cliflags.OutputNonTabularFormatFlags(&opts))
	return describeCmd
}

func newDownloadCmd() *cobra.Command {
	var target string
	downloadCmd := &cobra.Command{
		Use:   "download <media-id>",
		Short: "Download the contents of a media object.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			instanceID, err := util.InstanceID(ctx, []string{instanceFlag})
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
			data, err := util.GetAPIClient(ctx).Media().Download(ctx, instanceID, args[0])
			if err != nil {
				util.Fatal(cmd, fmt.Errorf("failed to download media %s: %w", args[0], err), 1)
			}
			if target == "" || target == "-" {
				_, err = cmd.OutOrStdout().Write(data)
			} else {
				err = os.WriteFile(target, data, os.FileMode(0o600)) //nolint:gomnd
			}
			if err != nil {
				util.Fatal(cmd, err, 1)
			}
		},
	}
	downloadCmd.Flags().StringVarP(&target, "output-file", "o", "", "Where to write the file (default stdout)")
	return downloadCmd
}
