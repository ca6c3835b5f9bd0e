//go:build windows

package provider

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

// runKeys are the auto-run registry locations, covering both the native
// and 32-bit-compatibility (WOW64) machine views.
var runKeys = []struct {
	root   registry.Key
	path   string
	source string
}{
	{registry.CURRENT_USER, `Software\Microsoft\Windows\CurrentVersion\Run`, `HKCU\Run`},
	{registry.LOCAL_MACHINE, `Software\Microsoft\Windows\CurrentVersion\Run`, `HKLM\Run`},
	{registry.LOCAL_MACHINE, `Software\WOW6432Node\Microsoft\Windows\CurrentVersion\Run`, `HKLM\Run (x86)`},
}

// startupExtensions are the file types counted in startup folders.
var startupExtensions = map[string]bool{
	".lnk": true, ".exe": true, ".bat": true, ".cmd": true,
}

type registryStartupProvider struct{}

// NewStartupProvider returns the registry- and folder-backed startup
// provider.
func NewStartupProvider() StartupProvider { return registryStartupProvider{} }

func (registryStartupProvider) Entries(ctx context.Context) ([]StartupEntry, error) {
	var (
		entries []StartupEntry
		readOK  int
		lastErr error
	)

	for _, loc := range runKeys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, err := readRunKey(loc.root, loc.path, loc.source)
		if err != nil {
			// Missing key or denied access skips the location, it
			// does not fail the domain.
			lastErr = err
			continue
		}
		readOK++
		entries = append(entries, items...)
	}

	for _, folder := range startupFolders() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, err := readStartupFolder(folder.path, folder.source)
		if err != nil {
			lastErr = err
			continue
		}
		readOK++
		entries = append(entries, items...)
	}

	if readOK == 0 && lastErr != nil {
		return nil, lastErr
	}
	return entries, nil
}

func readRunKey(root registry.Key, path, source string) ([]StartupEntry, error) {
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil, err
	}

	var entries []StartupEntry
	for _, name := range names {
		value, _, err := k.GetStringValue(name)
		if err != nil {
			continue
		}
		entries = append(entries, StartupEntry{Name: name, Path: value, Source: source})
	}
	return entries, nil
}

func startupFolders() []struct{ path, source string } {
	const suffix = `Microsoft\Windows\Start Menu\Programs\Startup`
	var folders []struct{ path, source string }
	if appData := os.Getenv("APPDATA"); appData != "" {
		folders = append(folders, struct{ path, source string }{
			filepath.Join(appData, suffix), "User Startup Folder",
		})
	}
	if programData := os.Getenv("PROGRAMDATA"); programData != "" {
		folders = append(folders, struct{ path, source string }{
			filepath.Join(programData, suffix), "Common Startup Folder",
		})
	}
	return folders
}

func readStartupFolder(dir, source string) ([]StartupEntry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []StartupEntry
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(item.Name()))
		if !startupExtensions[ext] {
			continue
		}
		name := strings.TrimSuffix(item.Name(), filepath.Ext(item.Name()))
		entries = append(entries, StartupEntry{
			Name:   name,
			Path:   filepath.Join(dir, item.Name()),
			Source: source,
		})
	}
	return entries, nil
}
