package classify

import (
	"fmt"
	"strings"

	"github.com/okulov/windiag/internal/models"
)

// deviceErrorDescriptions maps Plug-and-Play configuration-manager error
// codes to their documented meaning. Any nonzero code, mapped or not,
// indicates a device that stopped or failed to start.
var deviceErrorDescriptions = map[int]string{
	1:  "Device not configured",
	3:  "Driver corrupted",
	10: "Device cannot start",
	12: "Resource conflict",
	14: "Device needs restart",
	16: "Cannot identify resources",
	18: "Needs reinstall",
	19: "Registry corrupted",
	21: "Windows removing device",
	22: "Device disabled",
	24: "Device not present",
	28: "Drivers not installed",
	29: "Device disabled by firmware",
	31: "Device not working",
	32: "Driver disabled",
	33: "Cannot determine resources",
	34: "Cannot determine IRQ",
	35: "Cannot determine IRQ table",
	36: "Cannot determine IRQ translation",
	37: "Cannot determine DMA",
	38: "Cannot determine DMA type",
	39: "Driver registry entry corrupted",
	40: "Driver missing/corrupted",
	41: "Device failed to load",
	42: "Device cannot start",
	43: "Device reported problems",
	44: "Device stopped",
	45: "Device not connected",
	46: "Device not available",
	47: "Cannot use device",
	48: "Device software blocked",
	49: "Registry too large",
	52: "Driver not digitally signed",
}

// DeviceErrorDescription returns the documented description for a device
// error code, or a generic device-error text for unmapped codes.
func DeviceErrorDescription(code int) string {
	if desc, ok := deviceErrorDescriptions[code]; ok {
		return desc
	}
	return fmt.Sprintf("Device error (code %d)", code)
}

// DriverMetrics are the raw facts for one enumerated device.
type DriverMetrics struct {
	DeviceID  string
	ErrorCode int
	Version   string

	// Signed is nil when the signature state could not be read.
	Signed *bool
}

// Driver classifies one Plug-and-Play device. An active error code is
// Critical regardless of whether the code is in the known table; an
// unsigned but functioning driver is a Warning.
func Driver(name string, m DriverMetrics) models.Finding {
	metrics := map[string]models.Metric{
		models.MetricDeviceID:  models.Str(m.DeviceID),
		models.MetricErrorCode: models.Num(float64(m.ErrorCode)),
	}

	var (
		severity      models.Severity
		desc          string
		indeterminate bool
	)
	switch {
	case m.ErrorCode != 0:
		severity = models.SeverityCritical
		desc = DeviceErrorDescription(m.ErrorCode)
	case m.Signed != nil && !*m.Signed:
		severity = models.SeverityWarning
		desc = "driver is not digitally signed"
	case m.Signed == nil:
		severity = models.SeverityOK
		desc = "device functioning; signature state unavailable"
		indeterminate = true
	default:
		severity = models.SeverityOK
		desc = "device functioning normally"
	}

	if m.Signed == nil {
		metrics[models.MetricSigned] = models.UnknownMetric()
	} else if *m.Signed {
		metrics[models.MetricSigned] = models.Str("yes")
	} else {
		metrics[models.MetricSigned] = models.Str("no")
	}
	if m.Version != "" {
		metrics[models.MetricDriverVersion] = models.Str(m.Version)
	}

	return models.Finding{
		Category:      models.CategoryDriver,
		Identifier:    name,
		Metrics:       metrics,
		Severity:      severity,
		Description:   desc,
		Indeterminate: indeterminate,
	}
}

// highImpactApps are applications known to weigh on startup: launchers,
// chat/voice clients, sync clients, virtualization, antivirus suites,
// peripheral/RGB utilities, GPU control panels.
var highImpactApps = []string{
	"steam", "discord", "spotify", "teams", "slack", "skype",
	"onedrive", "dropbox", "googledrive", "icloud", "adobe",
	"creative cloud", "vmware", "virtualbox", "docker",
	"mcafee", "norton", "avast", "avg", "kaspersky", "bitdefender",
	"itunes", "epicgames", "origin", "battlenet", "gog galaxy",
	"corsair", "razer", "logitech", "steelseries", "nzxt",
	"nvidia", "amd", "geforce", "radeon",
}

// mediumImpactPatterns match helper processes: updaters, tray agents,
// sync daemons and the like.
var mediumImpactPatterns = []string{
	"java", "update", "helper", "sync", "tray", "agent",
	"monitor", "service", "daemon", "launcher", "updater",
	"assistant", "companion", "manager",
}

// StartupImpact rates a startup entry by matching its name and path
// against the known-application tables.
func StartupImpact(name, path string) models.Impact {
	nameLower := strings.ToLower(name)
	pathLower := strings.ToLower(path)

	for _, app := range highImpactApps {
		if strings.Contains(nameLower, app) || strings.Contains(pathLower, app) {
			return models.ImpactHigh
		}
	}
	for _, pattern := range mediumImpactPatterns {
		if strings.Contains(nameLower, pattern) || strings.Contains(pathLower, pattern) {
			return models.ImpactMedium
		}
	}
	return models.ImpactLow
}

// microsoftServicePatterns identify OS-owned services by name fragments.
// Used when the binary path alone is not decisive.
var microsoftServicePatterns = []string{
	"windows", "microsoft", "wmi", "wua", "wsearch", "wlan",
	"wdi", "wer", "wcn", "wbc", "vss", "vds", "uxsms", "usb",
	"upnp", "ui0", "tzautoupdate", "trkwks", "themes", "tablet",
	"sys", "svc", "spooler", "smart", "shell", "sens", "security",
	"scard", "sam", "rpc", "remote", "ras", "power", "plug", "pla",
	"perf", "pca", "p2p", "nsi", "network", "netlogon", "msi",
	"mps", "mpeg", "lm", "license", "lanman", "ksm", "keyiso",
	"iphlp", "iprip", "ikeext", "hid", "gpsvc", "font", "fdphost",
	"event", "eap", "dot3", "dns", "dfs", "device", "defragsvc",
	"dcom", "crypt", "core", "com", "clipboard", "cert", "browser",
	"bits", "base", "audio", "appx", "appv", "app", "action", ".net",
}

// IsMicrosoftService reports whether a service appears to be OS-owned,
// judged by its binary path (under the Windows tree) or by name pattern.
func IsMicrosoftService(name, displayName, binaryPath string) bool {
	pathLower := strings.ToLower(strings.Trim(binaryPath, `"`))
	if strings.Contains(pathLower, `\windows\`) {
		return true
	}

	combined := strings.ToLower(name + displayName)
	for _, pattern := range microsoftServicePatterns {
		if strings.Contains(combined, pattern) {
			return true
		}
	}
	return false
}

// IsMicrosoftAuthor reports whether a scheduled task's author names the
// OS vendor or the task lives under the Microsoft task tree.
func IsMicrosoftAuthor(author, taskPath string) bool {
	return strings.Contains(strings.ToLower(author), "microsoft") ||
		strings.HasPrefix(strings.ToLower(taskPath), `\microsoft\`)
}
