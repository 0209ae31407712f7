package cmd

import (
	"fmt"

	"github.com/deploymenttheory/go-classicbox/internal/common/fsutil"
	"github.com/deploymenttheory/go-classicbox/internal/macbinary"
	"github.com/deploymenttheory/go-classicbox/internal/resourcefork"
	"github.com/spf13/cobra"
)

var resforkCmd = &cobra.Command{
	Use:   "resfork",
	Short: "Inspect resource forks",
}

type resourceInfo struct {
	ID         int16  `json:"id" plist:"id"`
	Name       string `json:"name,omitempty" plist:"name,omitempty"`
	Attributes uint8  `json:"attributes" plist:"attributes"`
	Size       int    `json:"size" plist:"size"`
}

type typeInfo struct {
	Code      string         `json:"code" plist:"code"`
	Resources []resourceInfo `json:"resources" plist:"resources"`
}

type forkInfo struct {
	Attributes uint16     `json:"attributes" plist:"attributes"`
	Types      []typeInfo `json:"types" plist:"types"`
}

var resforkInfoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "List the resources in a resource fork",
	Long: `Lists the resources in a raw resource fork file, or in the resource
fork of a MacBinary file when --macbinary is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := fsutil.ReadFile(args[0])
		if err != nil {
			return err
		}

		if fromMB, _ := cmd.Flags().GetBool("macbinary"); fromMB {
			file, err := macbinary.Decode(data)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			data = file.ResourceFork
		}

		fork, err := resourcefork.Decode(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", args[0], err)
		}

		info := forkInfo{Attributes: fork.Attributes, Types: []typeInfo{}}
		for _, typ := range fork.Types {
			ti := typeInfo{Code: typ.Code, Resources: []resourceInfo{}}
			for _, res := range typ.Resources {
				ti.Resources = append(ti.Resources, resourceInfo{
					ID:         res.ID,
					Name:       res.Name,
					Attributes: res.Attributes,
					Size:       len(res.Data),
				})
			}
			info.Types = append(info.Types, ti)
		}

		if handled, err := renderStructured(info); handled {
			return err
		}

		if info.Attributes != 0 {
			fmt.Printf("Fork attributes: 0x%04X\n", info.Attributes)
		}
		for _, typ := range info.Types {
			fmt.Printf("'%s' (%d resources)\n", typ.Code, len(typ.Resources))
			for _, res := range typ.Resources {
				line := fmt.Sprintf("  %6d  %7d bytes", res.ID, res.Size)
				if res.Name != "" {
					line += fmt.Sprintf("  %q", res.Name)
				}
				if res.Attributes != 0 {
					line += fmt.Sprintf("  attrs=0x%02X", res.Attributes)
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

var resforkExtractCmd = &cobra.Command{
	Use:   "extract <file> <type> <id>",
	Short: "Write one resource's data to a file",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := fsutil.ReadFile(args[0])
		if err != nil {
			return err
		}
		if fromMB, _ := cmd.Flags().GetBool("macbinary"); fromMB {
			file, err := macbinary.Decode(data)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			data = file.ResourceFork
		}

		fork, err := resourcefork.Decode(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", args[0], err)
		}

		var id int16
		if _, err := fmt.Sscanf(args[2], "%d", &id); err != nil {
			return fmt.Errorf("invalid resource id %q: %w", args[2], err)
		}
		res, err := fork.Resource(args[1], id)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = fmt.Sprintf("%s-%d.bin", args[1], id)
		}
		if err := fsutil.WriteFile(out, res.Data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(res.Data), out)
		return nil
	},
}

func init() {
	resforkInfoCmd.Flags().Bool("macbinary", false, "read the fork from a MacBinary file")
	resforkExtractCmd.Flags().Bool("macbinary", false, "read the fork from a MacBinary file")
	resforkExtractCmd.Flags().String("out", "", "output path (default <type>-<id>.bin)")

	resforkCmd.AddCommand(resforkInfoCmd, resforkExtractCmd)
	rootCmd.AddCommand(resforkCmd)
}
