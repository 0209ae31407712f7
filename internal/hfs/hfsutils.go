package hfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/deploymenttheory/go-classicbox/internal/logger"
	"github.com/deploymenttheory/go-classicbox/internal/mactime"
)

// HFSUtils drives a locally installed copy of the hfsutils tool suite.
// The zero value looks tools up on PATH; set BinDir to use a specific
// installation.
//
// hfsutils keeps the current mounted volume in per-user state
// (~/.hcwd), so operations address whichever image was mounted last.
type HFSUtils struct {
	BinDir string
}

var _ Volume = (*HFSUtils)(nil)

func (h *HFSUtils) tool(name string) string {
	if h.BinDir == "" {
		return name
	}
	return filepath.Join(h.BinDir, name)
}

// run executes one tool, returning its stdout. A nonzero exit becomes a
// ToolError carrying the captured stderr.
func (h *HFSUtils) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	logger.LogDebug("Running hfsutils tool", map[string]interface{}{
		"tool": name,
		"args": strings.Join(args, " "),
	})

	cmd := exec.CommandContext(ctx, h.tool(name), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if cmd.ProcessState != nil {
			exitCode = cmd.ProcessState.ExitCode()
		}
		return stdout.Bytes(), &ToolError{
			Tool:     name,
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return stdout.Bytes(), nil
}

var (
	mountVolumeNameRE = regexp.MustCompile(`^Volume name is "(.*)"$`)
	mountCreatedRE    = regexp.MustCompile(`^Volume was created on (.*)$`)
	mountModifiedRE   = regexp.MustCompile(`^Volume was last modified on (.*)$`)
	mountBytesFreeRE  = regexp.MustCompile(`^Volume has ([0-9]+) bytes free$`)
)

func (h *HFSUtils) Mount(ctx context.Context, imagePath string) (*VolumeInfo, error) {
	out, err := h.run(ctx, "hmount", imagePath)
	if err != nil {
		return nil, fmt.Errorf("mounting %s: %w", imagePath, err)
	}
	return parseMountOutput(out), nil
}

func parseMountOutput(out []byte) *VolumeInfo {
	info := &VolumeInfo{}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r\n")

		if m := mountVolumeNameRE.FindStringSubmatch(line); m != nil {
			info.Name = m[1]
		}
		if m := mountCreatedRE.FindStringSubmatch(line); m != nil {
			info.Created = parseToolDate(m[1])
		}
		if m := mountModifiedRE.FindStringSubmatch(line); m != nil {
			info.Modified = parseToolDate(m[1])
		}
		if m := mountBytesFreeRE.FindStringSubmatch(line); m != nil {
			info.BytesFree, _ = strconv.ParseInt(m[1], 10, 64)
		}
	}
	return info
}

// parseToolDate converts a ctime-style date string as printed by hmount
// ("Sun Sep 23 19:14:47 2012") to a Mac timestamp. Unparsable dates
// yield zero; hmount output is informational only.
func parseToolDate(s string) uint32 {
	t, err := time.ParseInLocation(time.ANSIC, strings.TrimSpace(s), time.Local)
	if err != nil {
		logger.LogWarn("Unparsable date in tool output", map[string]interface{}{
			"date": s,
		})
		return 0
	}
	return mactime.FromTime(t)
}

func (h *HFSUtils) List(ctx context.Context, dirPath string) ([]Item, error) {
	out, err := h.run(ctx, "hdir", "-i", dirPath)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dirPath, err)
	}
	return parseListing(out)
}

func (h *HFSUtils) Stat(ctx context.Context, itemPath string) (*Item, error) {
	// hdir -d lists the item itself rather than its contents, with the
	// full path in the name column.
	out, err := h.run(ctx, "hdir", "-i", "-d", itemPath)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", itemPath, ErrItemNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", itemPath, err)
	}

	items, err := parseListing(out)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", itemPath, ErrItemNotFound)
	}
	item := items[0]
	item.Name = ItemName(itemPath)
	return &item, nil
}

func (h *HFSUtils) Exists(ctx context.Context, itemPath string) (bool, error) {
	_, err := h.run(ctx, "hdir", "-i", "-d", itemPath)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isNotFound(err error) bool {
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(toolErr.Stderr, "\n"), "no such file or directory")
}

func (h *HFSUtils) CopyIn(ctx context.Context, localPath, targetPath string) error {
	if _, err := h.run(ctx, "hcopy", "-m", localPath, targetPath); err != nil {
		return fmt.Errorf("copying %s onto volume: %w", localPath, err)
	}
	return nil
}

func (h *HFSUtils) CopyInStream(ctx context.Context, src io.Reader, targetPath string) error {
	// hcopy only reads from a file, so the stream is staged locally
	tmp, err := os.CreateTemp("", "classicbox-*.bin")
	if err != nil {
		return fmt.Errorf("staging stream: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, copyErr := io.Copy(tmp, src)
	closeErr := tmp.Close()
	if copyErr != nil {
		return fmt.Errorf("staging stream: %w", copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("staging stream: %w", closeErr)
	}

	return h.CopyIn(ctx, tmpPath, targetPath)
}

func (h *HFSUtils) CopyOut(ctx context.Context, sourcePath, localPath string) error {
	if _, err := h.run(ctx, "hcopy", "-m", sourcePath, localPath); err != nil {
		return fmt.Errorf("copying %s off volume: %w", sourcePath, err)
	}
	return nil
}

func (h *HFSUtils) Delete(ctx context.Context, itemPath string) error {
	if _, err := h.run(ctx, "hdel", itemPath); err != nil {
		return fmt.Errorf("deleting %s: %w", itemPath, err)
	}
	return nil
}

func (h *HFSUtils) Mkdir(ctx context.Context, dirPath string) error {
	if _, err := h.run(ctx, "hmkdir", dirPath); err != nil {
		return fmt.Errorf("creating directory %s: %w", dirPath, err)
	}
	return nil
}

func (h *HFSUtils) Format(ctx context.Context, imagePath, name string) error {
	if _, err := h.run(ctx, "hformat", "-l", name, imagePath); err != nil {
		return fmt.Errorf("formatting %s: %w", imagePath, err)
	}
	return nil
}

func (h *HFSUtils) FormatNew(ctx context.Context, imagePath, name string, size int64) error {
	f, err := os.Create(imagePath)
	if err != nil {
		return fmt.Errorf("creating image %s: %w", imagePath, err)
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return fmt.Errorf("sizing image %s: %w", imagePath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("creating image %s: %w", imagePath, err)
	}
	return h.Format(ctx, imagePath, name)
}

var (
	fileLineRE = regexp.MustCompile(`^ *([0-9]+) [fF][ i] (....)/(....) +([0-9]+) +([0-9]+) ([^ ]...........) (.+)$`)
	dirLineRE  = regexp.MustCompile(`^ *([0-9]+) [dD][ i] +([0-9]+) items? +([^ ]...........) (.+)$`)
)

func parseListing(out []byte) ([]Item, error) {
	items := []Item{}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		item, err := parseListingLine(line)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func parseListingLine(line string) (Item, error) {
	if m := fileLineRE.FindStringSubmatch(line); m != nil {
		id, _ := strconv.ParseUint(m[1], 10, 32)
		dataSize, _ := strconv.ParseInt(m[4], 10, 64)
		rsrcSize, _ := strconv.ParseInt(m[5], 10, 64)
		return Item{
			ID:       uint32(id),
			Name:     m[7],
			IsFile:   true,
			Type:     m[2],
			Creator:  m[3],
			DataSize: dataSize,
			RsrcSize: rsrcSize,
			Modified: m[6],
		}, nil
	}

	if m := dirLineRE.FindStringSubmatch(line); m != nil {
		id, _ := strconv.ParseUint(m[1], 10, 32)
		return Item{
			ID:       uint32(id),
			Name:     m[4],
			Modified: m[3],
		}, nil
	}

	return Item{}, fmt.Errorf("%w: %q", ErrUnparsableListing, line)
}
