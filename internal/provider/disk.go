package provider

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

type systemDiskProvider struct{}

// NewDiskProvider returns the gopsutil-backed disk provider. Failure
// prediction is platform-specific and wired in per build tag.
func NewDiskProvider() DiskProvider { return systemDiskProvider{} }

func (systemDiskProvider) Partitions(ctx context.Context) ([]PartitionUsage, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	var usages []PartitionUsage
	for _, p := range parts {
		// Optical and unformatted volumes have no meaningful free-space
		// reading.
		if p.Fstype == "" || strings.Contains(strings.ToLower(strings.Join(p.Opts, ",")), "cdrom") {
			continue
		}
		u, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			continue
		}
		usages = append(usages, PartitionUsage{
			Device:      p.Device,
			Mountpoint:  p.Mountpoint,
			Filesystem:  p.Fstype,
			TotalBytes:  u.Total,
			FreeBytes:   u.Free,
			FreePercent: 100 - u.UsedPercent,
		})
	}
	return usages, nil
}

func (systemDiskProvider) TempUsage(ctx context.Context) (uint64, int, error) {
	var (
		total uint64
		files int
	)

	for _, dir := range tempDirs() {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Locked or vanished entries are expected in temp trees.
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() {
				return nil
			}
			if info, err := d.Info(); err == nil {
				total += uint64(info.Size())
				files++
			}
			return nil
		})
		if err != nil && err == ctx.Err() {
			return 0, 0, err
		}
	}
	return total, files, nil
}

// tempDirs returns the deduplicated set of known temp locations.
func tempDirs() []string {
	candidates := []string{os.TempDir(), os.Getenv("TEMP"), os.Getenv("TMP")}
	if windir := os.Getenv("WINDIR"); windir != "" {
		candidates = append(candidates, filepath.Join(windir, "Temp"))
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		clean := filepath.Clean(dir)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		dirs = append(dirs, clean)
	}
	return dirs
}
