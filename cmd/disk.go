package cmd

import (
	"fmt"
	"time"

	"github.com/deploymenttheory/go-classicbox/internal/config"
	"github.com/deploymenttheory/go-classicbox/internal/hfs"
	"github.com/deploymenttheory/go-classicbox/internal/mactime"
	"github.com/spf13/cobra"
)

var diskCmd = &cobra.Command{
	Use:   "disk",
	Short: "Examine HFS Standard disk images",
}

func volume() *hfs.HFSUtils {
	return &hfs.HFSUtils{BinDir: config.Instance.Tools.HFSUtilsDir}
}

type diskInfo struct {
	Image     string    `json:"image" plist:"image"`
	Format    string    `json:"format" plist:"format"`
	Name      string    `json:"name,omitempty" plist:"name,omitempty"`
	Created   time.Time `json:"created,omitempty" plist:"created,omitempty"`
	Modified  time.Time `json:"modified,omitempty" plist:"modified,omitempty"`
	BytesFree int64     `json:"bytes_free,omitempty" plist:"bytes_free,omitempty"`
}

var diskInfoCmd = &cobra.Command{
	Use:   "info <image>",
	Short: "Show the volume information of a disk image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := hfs.SniffImage(args[0])
		if err != nil {
			return err
		}

		info := diskInfo{Image: args[0], Format: kind.String()}
		if kind == hfs.ImageHFS {
			vi, err := volume().Mount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			info.Name = vi.Name
			info.Created = mactime.ToTime(vi.Created)
			info.Modified = mactime.ToTime(vi.Modified)
			info.BytesFree = vi.BytesFree
		}

		if handled, err := renderStructured(info); handled {
			return err
		}

		fmt.Printf("Image:  %s\n", info.Image)
		fmt.Printf("Format: %s\n", info.Format)
		if kind != hfs.ImageHFS {
			fmt.Println("Not an HFS Standard image; hfsutils cannot mount it")
			return nil
		}
		fmt.Printf("Volume: %s\n", info.Name)
		fmt.Printf("Created:    %s\n", info.Created.Format(time.RFC1123))
		fmt.Printf("Modified:   %s\n", info.Modified.Format(time.RFC1123))
		fmt.Printf("Bytes free: %d\n", info.BytesFree)
		return nil
	},
}

var diskLsCmd = &cobra.Command{
	Use:   "ls <image> [path]",
	Short: "List a directory on a disk image",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		vol := volume()

		vi, err := vol.Mount(ctx, args[0])
		if err != nil {
			return err
		}
		dirPath := vi.Name + ":"
		if len(args) == 2 {
			dirPath = hfs.NormPath(args[1])
		}

		items, err := vol.List(ctx, dirPath)
		if err != nil {
			return err
		}

		if handled, err := renderStructured(items); handled {
			return err
		}

		for _, item := range items {
			if item.IsFile {
				fmt.Printf("%6d  %s/%s  %8d  %8d  %s  %s\n",
					item.ID, item.Type, item.Creator,
					item.DataSize, item.RsrcSize, item.Modified, item.Name)
			} else {
				fmt.Printf("%6d  %-9s  %8s  %8s  %s  %s:\n",
					item.ID, "dir", "", "", item.Modified, item.Name)
			}
		}
		return nil
	},
}

var diskMkCmd = &cobra.Command{
	Use:   "format <image> <volume-name>",
	Short: "Create and format a blank HFS disk image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt64("size")
		if err := volume().FormatNew(cmd.Context(), args[0], args[1], size); err != nil {
			return err
		}
		fmt.Printf("Formatted %s as volume %q (%d bytes)\n", args[0], args[1], size)
		return nil
	},
}

func init() {
	diskMkCmd.Flags().Int64("size", 20*1024*1024, "image size in bytes")

	diskCmd.AddCommand(diskInfoCmd, diskLsCmd, diskMkCmd)
	rootCmd.AddCommand(diskCmd)
}
