package archive

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/deploymenttheory/go-classicbox/internal/logger"
)

// Unar extracts archives through The Unarchiver's unar command, which
// handles StuffIt, BinHex, and other classic Mac formats the native
// extractor does not. Inner archives are extracted recursively.
type Unar struct {
	// Bin is the unar executable; empty means look it up on PATH.
	Bin string

	// SaveForks saves resource forks natively instead of as AppleDouble
	// files. Only meaningful on macOS.
	SaveForks bool
}

var _ Extractor = (*Unar)(nil)

func (u *Unar) Extract(ctx context.Context, archivePath, destDir string) error {
	bin := u.Bin
	if bin == "" {
		bin = "unar"
	}

	args := []string{}
	if u.SaveForks {
		args = append(args, "-forks", "fork")
	}
	args = append(args,
		"-no-quarantine",
		"-no-directory",
		"-output-directory", destDir,
		archivePath,
	)

	logger.LogDebug("Extracting archive with unar", map[string]interface{}{
		"archive": archivePath,
		"dest":    destDir,
	})

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%w: unar: %s", ErrExtraction, msg)
		}
		return fmt.Errorf("%w: unar: %v", ErrExtraction, err)
	}
	return nil
}
