package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-classicbox/internal/alias"
	"github.com/deploymenttheory/go-classicbox/internal/common/fsutil"
	"github.com/deploymenttheory/go-classicbox/internal/config"
	"github.com/deploymenttheory/go-classicbox/internal/hfs"
	"github.com/deploymenttheory/go-classicbox/internal/logger"
	"github.com/spf13/cobra"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Inspect and create Finder alias files",
}

type aliasInfo struct {
	Kind              string   `json:"kind" plist:"kind"`
	VolumeName        string   `json:"volume_name" plist:"volume_name"`
	VolumeCreated     uint32   `json:"volume_created" plist:"volume_created"`
	ParentDirectoryID uint32   `json:"parent_directory_id" plist:"parent_directory_id"`
	FileName          string   `json:"file_name" plist:"file_name"`
	FileNumber        uint32   `json:"file_number" plist:"file_number"`
	FileType          string   `json:"file_type,omitempty" plist:"file_type,omitempty"`
	FileCreator       string   `json:"file_creator,omitempty" plist:"file_creator,omitempty"`
	Parent            string   `json:"parent,omitempty" plist:"parent,omitempty"`
	DirectoryIDs      []uint32 `json:"directory_ids,omitempty" plist:"directory_ids,omitempty"`
	AbsolutePath      string   `json:"absolute_path,omitempty" plist:"absolute_path,omitempty"`
}

func kindName(kind uint16) string {
	switch kind {
	case alias.KindFile:
		return "file"
	case alias.KindFolder:
		return "folder"
	default:
		return fmt.Sprintf("unknown (%d)", kind)
	}
}

// decodeAnyAlias accepts a MacBinary alias file, a raw resource fork,
// or a bare alias record.
func decodeAnyAlias(data []byte) (*alias.Record, error) {
	if f, err := alias.DecodeMacBinary(data); err == nil {
		return &f.Record, nil
	}
	if f, err := alias.DecodeFork(data); err == nil {
		return &f.Record, nil
	}
	rec, err := alias.DecodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("not a recognizable alias file: %w", err)
	}
	return rec, nil
}

var aliasInfoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show where an alias file points",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := fsutil.ReadFile(args[0])
		if err != nil {
			return err
		}
		rec, err := decodeAnyAlias(data)
		if err != nil {
			return err
		}

		info := aliasInfo{
			Kind:              kindName(rec.Kind),
			VolumeName:        rec.VolumeName,
			VolumeCreated:     rec.VolumeCreated,
			ParentDirectoryID: rec.ParentDirectoryID,
			FileName:          rec.FileName,
			FileNumber:        rec.FileNumber,
			FileType:          rec.FileType,
			FileCreator:       rec.FileCreator,
		}
		if e, ok := rec.Extra(alias.TagParentDirectoryName); ok {
			info.Parent = e.String()
		}
		if e, ok := rec.Extra(alias.TagDirectoryIDs); ok {
			info.DirectoryIDs = e.DirectoryIDs()
		}
		if e, ok := rec.Extra(alias.TagAbsolutePath); ok {
			info.AbsolutePath = e.String()
		}

		if handled, err := renderStructured(info); handled {
			return err
		}

		fmt.Printf("Kind:         %s\n", info.Kind)
		fmt.Printf("Target:       %s (id %d)\n", info.FileName, info.FileNumber)
		if info.FileType != "" || info.FileCreator != "" {
			fmt.Printf("Type/Creator: %s/%s\n", info.FileType, info.FileCreator)
		}
		fmt.Printf("Volume:       %s\n", info.VolumeName)
		fmt.Printf("Parent dir:   %d", info.ParentDirectoryID)
		if info.Parent != "" {
			fmt.Printf(" (%s)", info.Parent)
		}
		fmt.Println()
		if info.AbsolutePath != "" {
			fmt.Printf("Path:         %s\n", info.AbsolutePath)
		}
		return nil
	},
}

var aliasCreateCmd = &cobra.Command{
	Use:   "create <target-image> <target-path>",
	Short: "Create an alias file pointing at an item on a disk image",
	Long: `Creates a MacBinary-encoded alias file pointing at <target-path>
on the HFS disk image <target-image>. The alias is written to --out, or
copied onto another disk image when --dest-image and --dest-path are
given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		vol := &hfs.HFSUtils{BinDir: config.Instance.Tools.HFSUtilsDir}

		target, err := gatherTarget(cmd, vol, args[0], args[1])
		if err != nil {
			return err
		}

		file := alias.NewFileForTarget(*target)

		outPath, _ := cmd.Flags().GetString("out")
		destImage, _ := cmd.Flags().GetString("dest-image")
		destPath, _ := cmd.Flags().GetString("dest-path")

		filename := target.Name + " alias"
		if destPath != "" {
			filename = hfs.ItemName(destPath)
		}

		encoded, err := file.EncodeMacBinary(filename)
		if err != nil {
			return err
		}

		switch {
		case destImage != "" && destPath != "":
			if _, err := vol.Mount(ctx, destImage); err != nil {
				return err
			}
			if err := vol.CopyInStream(ctx, bytes.NewReader(encoded), destPath); err != nil {
				return err
			}
			logger.LogInfo("Copied alias onto disk image", map[string]interface{}{
				"image": destImage, "path": destPath,
			})
		case outPath != "":
			if err := fsutil.WriteFile(outPath, encoded, 0o644); err != nil {
				return err
			}
			logger.LogInfo("Wrote alias file", map[string]interface{}{
				"path": outPath, "bytes": len(encoded),
			})
		default:
			return fmt.Errorf("either --out or both --dest-image and --dest-path are required")
		}
		return nil
	},
}

// gatherTarget collects everything an alias record needs to describe an
// item: the volume it lives on, the item itself, and its chain of
// enclosing directories.
func gatherTarget(cmd *cobra.Command, vol hfs.Volume, imagePath, itemPath string) (*alias.Target, error) {
	ctx := cmd.Context()
	itemPath = hfs.NormPath(itemPath)

	volumeInfo, err := vol.Mount(ctx, imagePath)
	if err != nil {
		return nil, err
	}
	item, err := vol.Stat(ctx, itemPath)
	if err != nil {
		return nil, err
	}

	target := &alias.Target{
		VolumeName:    volumeInfo.Name,
		VolumeCreated: volumeInfo.Created,
		Name:          item.Name,
		ID:            item.ID,
		IsFile:        item.IsFile,
		IsVolume:      strings.HasSuffix(itemPath, ":"),
		Type:          item.Type,
		Creator:       item.Creator,
		AbsolutePath:  itemPath,
	}
	if target.IsVolume {
		return target, nil
	}

	// Walk the enclosing directories up to the volume root. The parent
	// is the first; ancestor ids exclude the root itself.
	var chain []hfs.Item
	for dir := hfs.DirPath(itemPath); dir != ""; dir = hfs.DirPath(dir) {
		info, err := vol.Stat(ctx, dir)
		if err != nil {
			return nil, err
		}
		chain = append(chain, *info)
	}
	target.ParentID = chain[0].ID
	target.Parent = chain[0].Name
	for _, ancestor := range chain[:len(chain)-1] {
		target.Ancestors = append(target.Ancestors, ancestor.ID)
	}
	return target, nil
}

func init() {
	aliasCreateCmd.Flags().String("out", "", "write the MacBinary alias file to this local path")
	aliasCreateCmd.Flags().String("dest-image", "", "disk image to copy the alias onto")
	aliasCreateCmd.Flags().String("dest-path", "", "MacOS path for the alias on the destination image")

	aliasCmd.AddCommand(aliasInfoCmd, aliasCreateCmd)
	rootCmd.AddCommand(aliasCmd)
}
