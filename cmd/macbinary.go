package cmd

import (
	"fmt"
	"time"

	"github.com/deploymenttheory/go-classicbox/internal/common/fsutil"
	"github.com/deploymenttheory/go-classicbox/internal/common/plistutil"
	"github.com/deploymenttheory/go-classicbox/internal/logger"
	"github.com/deploymenttheory/go-classicbox/internal/macbinary"
	"github.com/deploymenttheory/go-classicbox/internal/mactime"
	"github.com/spf13/cobra"
)

var macbinaryCmd = &cobra.Command{
	Use:   "macbinary",
	Short: "Inspect and build MacBinary files",
}

// macbinaryInfo is the inspection report for a MacBinary file
type macbinaryInfo struct {
	Filename     string    `json:"filename" plist:"filename"`
	Version      string    `json:"version" plist:"version"`
	FileType     string    `json:"file_type" plist:"file_type"`
	FileCreator  string    `json:"file_creator" plist:"file_creator"`
	FinderFlags  uint8     `json:"finder_flags" plist:"finder_flags"`
	DataForkSize int       `json:"data_fork_size" plist:"data_fork_size"`
	RsrcForkSize int       `json:"rsrc_fork_size" plist:"rsrc_fork_size"`
	Created      time.Time `json:"created" plist:"created"`
	Modified     time.Time `json:"modified" plist:"modified"`
	Comment      string    `json:"comment,omitempty" plist:"comment,omitempty"`
}

func versionName(v int) string {
	switch v {
	case macbinary.VersionI:
		return "I"
	case macbinary.VersionII:
		return "II"
	case macbinary.VersionIII:
		return "III"
	default:
		return "unknown"
	}
}

func newMacBinaryInfo(file *macbinary.File) macbinaryInfo {
	return macbinaryInfo{
		Filename:     file.Header.Filename,
		Version:      versionName(file.Version),
		FileType:     file.Header.FileType,
		FileCreator:  file.Header.FileCreator,
		FinderFlags:  file.Header.FinderFlags,
		DataForkSize: len(file.DataFork),
		RsrcForkSize: len(file.ResourceFork),
		Created:      mactime.ToTime(file.Header.Created),
		Modified:     mactime.ToTime(file.Header.Modified),
		Comment:      string(file.Comment),
	}
}

var macbinaryInfoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show the header of a MacBinary file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := fsutil.ReadFile(args[0])
		if err != nil {
			return err
		}
		file, err := macbinary.Decode(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", args[0], err)
		}

		if dest, _ := cmd.Flags().GetString("extract-data"); dest != "" {
			if err := fsutil.WriteFile(dest, file.DataFork, 0o644); err != nil {
				return err
			}
			logger.LogInfo("Extracted data fork", map[string]interface{}{
				"dest": dest, "bytes": len(file.DataFork),
			})
		}
		if dest, _ := cmd.Flags().GetString("extract-rsrc"); dest != "" {
			if err := fsutil.WriteFile(dest, file.ResourceFork, 0o644); err != nil {
				return err
			}
			logger.LogInfo("Extracted resource fork", map[string]interface{}{
				"dest": dest, "bytes": len(file.ResourceFork),
			})
		}

		info := newMacBinaryInfo(file)

		if report, _ := cmd.Flags().GetString("report"); report != "" {
			if err := plistutil.WritePlist(report, info, plistutil.FormatXML); err != nil {
				return err
			}
			logger.LogInfo("Wrote plist report", map[string]interface{}{
				"path": report,
			})
		}

		if handled, err := renderStructured(info); handled {
			return err
		}

		fmt.Printf("Filename:      %s\n", info.Filename)
		fmt.Printf("Version:       MacBinary %s\n", info.Version)
		fmt.Printf("Type/Creator:  %s/%s\n", info.FileType, info.FileCreator)
		fmt.Printf("Finder flags:  0x%02X\n", info.FinderFlags)
		fmt.Printf("Data fork:     %d bytes\n", info.DataForkSize)
		fmt.Printf("Resource fork: %d bytes\n", info.RsrcForkSize)
		fmt.Printf("Created:       %s\n", info.Created.Format(time.RFC1123))
		fmt.Printf("Modified:      %s\n", info.Modified.Format(time.RFC1123))
		if info.Comment != "" {
			fmt.Printf("Comment:       %s\n", info.Comment)
		}
		return nil
	},
}

// applyPackMeta fills header fields from a plist metadata dictionary.
// Values given explicitly on the command line win over plist values.
func applyPackMeta(file *macbinary.File, meta map[string]interface{}) {
	if s, ok := meta["file_type"].(string); ok && file.Header.FileType == "" {
		file.Header.FileType = s
	}
	if s, ok := meta["file_creator"].(string); ok && file.Header.FileCreator == "" {
		file.Header.FileCreator = s
	}
	if n, ok := meta["finder_flags"].(uint64); ok {
		file.Header.FinderFlags = uint8(n)
	}
}

var macbinaryPackCmd = &cobra.Command{
	Use:   "pack <filename>",
	Short: "Build a MacBinary file from fork contents",
	Long: `Builds a MacBinary III file named <filename> (the name stored in the
header, at most 63 bytes) from the given fork files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataPath, _ := cmd.Flags().GetString("data")
		rsrcPath, _ := cmd.Flags().GetString("rsrc")
		fileType, _ := cmd.Flags().GetString("type")
		fileCreator, _ := cmd.Flags().GetString("creator")
		outPath, _ := cmd.Flags().GetString("out")

		file := &macbinary.File{
			Header: macbinary.Header{
				Filename:    args[0],
				FileType:    fileType,
				FileCreator: fileCreator,
			},
		}

		if metaPath, _ := cmd.Flags().GetString("meta"); metaPath != "" {
			meta, err := plistutil.ReadPlist(metaPath)
			if err != nil {
				return err
			}
			applyPackMeta(file, meta)
		}

		var err error
		if dataPath != "" {
			if file.DataFork, err = fsutil.ReadFile(dataPath); err != nil {
				return err
			}
		}
		if rsrcPath != "" {
			if file.ResourceFork, err = fsutil.ReadFile(rsrcPath); err != nil {
				return err
			}
		}

		encoded, err := file.Encode()
		if err != nil {
			return err
		}
		if outPath == "" {
			outPath = args[0] + ".bin"
		}
		if err := fsutil.WriteFile(outPath, encoded, 0o644); err != nil {
			return err
		}
		logger.LogInfo("Wrote MacBinary file", map[string]interface{}{
			"path": outPath, "bytes": len(encoded),
		})
		return nil
	},
}

func init() {
	macbinaryInfoCmd.Flags().String("extract-data", "", "write the data fork to this path")
	macbinaryInfoCmd.Flags().String("extract-rsrc", "", "write the resource fork to this path")
	macbinaryInfoCmd.Flags().String("report", "", "also write the report as an XML plist to this path")

	macbinaryPackCmd.Flags().String("meta", "", "plist file supplying default header fields (file_type, file_creator, finder_flags)")
	macbinaryPackCmd.Flags().String("data", "", "data fork contents file")
	macbinaryPackCmd.Flags().String("rsrc", "", "resource fork contents file")
	macbinaryPackCmd.Flags().String("type", "", "4-character file type code")
	macbinaryPackCmd.Flags().String("creator", "", "4-character creator code")
	macbinaryPackCmd.Flags().String("out", "", "output path (default <filename>.bin)")

	macbinaryCmd.AddCommand(macbinaryInfoCmd, macbinaryPackCmd)
	rootCmd.AddCommand(macbinaryCmd)
}
