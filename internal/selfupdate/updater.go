package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"runtime"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
)

// devVersion is the version string of binaries built without -ldflags.
const devVersion = "(devel)"

// Update stages, reported in this order.
const (
	StageCheck    = "check"
	StageDownload = "download"
	StageVerify   = "verify"
	StageExtract  = "extract"
	StageApply    = "apply"
	StageDone     = "done"
)

type UpdateInput struct {
	CurrentVersion string
	// TargetVersion skips the release lookup when set.
	TargetVersion string
}

type UpdateProgress struct {
	Stage   string
	Message string
}

// Update downloads the release archive for this platform, verifies it
// against the release checksums and replaces the running executable.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == devVersion {
		return ErrDevBuild
	}
	report := func(stage, format string, args ...any) {
		if progress != nil {
			progress(UpdateProgress{Stage: stage, Message: fmt.Sprintf(format, args...)})
		}
	}

	tag := input.TargetVersion
	if tag == "" {
		report(StageCheck, "Checking for latest version...")
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	a, err := assetFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	client := c.client()
	defer func() { _ = client.Close() }()
	releaseDir := fmt.Sprintf("%s/%s/%s/releases/download/%s", c.download, releaseOwner, releaseRepo, tag)

	report(StageDownload, "Downloading %s...", tag)
	archive, err := c.get(ctx, client, releaseDir+"/"+a.name)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(StageVerify, "Verifying checksum...")
	manifest, err := c.get(ctx, client, releaseDir+"/"+checksumsFile)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	sum, err := expectedSum(manifest, a.name)
	if err != nil {
		return err
	}
	if err := checkSum(archive, sum); err != nil {
		return err
	}

	report(StageExtract, "Extracting binary...")
	binary, err := unpack(a, archive)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report(StageApply, "Applying update...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := replaceExecutable(target, binary); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report(StageDone, "Updated to %s", tag)
	return nil
}
