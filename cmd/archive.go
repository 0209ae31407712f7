package cmd

import (
	"fmt"

	"github.com/deploymenttheory/go-classicbox/internal/archive"
	"github.com/deploymenttheory/go-classicbox/internal/common/fsutil"
	"github.com/deploymenttheory/go-classicbox/internal/config"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Extract software archives",
}

var archiveExtractCmd = &cobra.Command{
	Use:   "extract <archive>",
	Short: "Extract an archive to a directory",
	Long: `Extracts an archive to --dest. The native extractor handles zip,
tar, gzip, bzip2, and xz; --tool unar switches to The Unarchiver, which
also handles StuffIt and other classic Mac formats.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !fsutil.FileExists(args[0]) {
			return fmt.Errorf("archive %s does not exist", args[0])
		}

		dest, _ := cmd.Flags().GetString("dest")
		tool, _ := cmd.Flags().GetString("tool")

		var extractor archive.Extractor
		switch tool {
		case "native":
			extractor = &archive.Native{}
		case "unar":
			extractor = &archive.Unar{
				Bin:       config.Instance.Tools.Unar,
				SaveForks: config.Instance.Tools.SaveForks,
			}
		default:
			return fmt.Errorf("unknown extraction tool %q", tool)
		}

		if dest == "" {
			dest = "."
		}
		if err := fsutil.CreateDirIfNotExists(dest); err != nil {
			return err
		}
		if err := extractor.Extract(cmd.Context(), args[0], dest); err != nil {
			return err
		}
		fmt.Printf("Extracted %s to %s\n", args[0], dest)
		return nil
	},
}

func init() {
	archiveExtractCmd.Flags().String("dest", "", "destination directory (default current directory)")
	archiveExtractCmd.Flags().String("tool", "native", "extraction tool: native or unar")

	archiveCmd.AddCommand(archiveExtractCmd)
	rootCmd.AddCommand(archiveCmd)
}
