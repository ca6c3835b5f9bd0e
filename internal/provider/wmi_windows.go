//go:build windows

package provider

import (
	"context"

	"github.com/yusufpapurcu/wmi"
)

// win32Service mirrors the queried columns of Win32_Service. Nullable
// columns use pointers so WMI nulls unmarshal cleanly.
type win32Service struct {
	Name        string
	DisplayName string
	State       string
	StartMode   string
	PathName    *string
}

type wmiServiceProvider struct{}

// NewServiceProvider returns the WMI-backed service provider.
func NewServiceProvider() ServiceProvider { return wmiServiceProvider{} }

func (wmiServiceProvider) AutoStartServices(ctx context.Context) ([]ServiceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var dst []win32Service
	q := "SELECT Name, DisplayName, State, StartMode, PathName FROM Win32_Service WHERE StartMode = 'Auto'"
	if err := wmi.Query(q, &dst); err != nil {
		return nil, err
	}

	services := make([]ServiceInfo, 0, len(dst))
	for _, s := range dst {
		info := ServiceInfo{
			Name:        s.Name,
			DisplayName: s.DisplayName,
			State:       s.State,
			StartMode:   s.StartMode,
		}
		if s.PathName != nil {
			info.PathName = *s.PathName
		}
		services = append(services, info)
	}
	return services, nil
}

// win32PnPEntity mirrors the queried columns of Win32_PnPEntity.
type win32PnPEntity struct {
	Name                   *string
	DeviceID               *string
	Status                 *string
	ConfigManagerErrorCode *uint32
}

// win32PnPSignedDriver mirrors the queried columns of Win32_PnPSignedDriver.
type win32PnPSignedDriver struct {
	DeviceName    *string
	DriverVersion *string
	IsSigned      *bool
}

type wmiDeviceProvider struct{}

// NewDeviceProvider returns the WMI-backed device provider.
func NewDeviceProvider() DeviceProvider { return wmiDeviceProvider{} }

func (wmiDeviceProvider) Devices(ctx context.Context) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var dst []win32PnPEntity
	q := "SELECT Name, DeviceID, Status, ConfigManagerErrorCode FROM Win32_PnPEntity"
	if err := wmi.Query(q, &dst); err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(dst))
	for _, d := range dst {
		dev := Device{Name: "Unknown Device"}
		if d.Name != nil && *d.Name != "" {
			dev.Name = *d.Name
		}
		if d.DeviceID != nil {
			dev.DeviceID = *d.DeviceID
		}
		if d.Status != nil {
			dev.Status = *d.Status
		}
		if d.ConfigManagerErrorCode != nil {
			dev.ErrorCode = int(*d.ConfigManagerErrorCode)
		}
		devices = append(devices, dev)
	}
	return devices, nil
}

func (wmiDeviceProvider) Signatures(ctx context.Context) ([]DriverSignature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var dst []win32PnPSignedDriver
	q := "SELECT DeviceName, DriverVersion, IsSigned FROM Win32_PnPSignedDriver"
	if err := wmi.Query(q, &dst); err != nil {
		return nil, err
	}

	sigs := make([]DriverSignature, 0, len(dst))
	for _, d := range dst {
		if d.DeviceName == nil || *d.DeviceName == "" {
			continue
		}
		sig := DriverSignature{DeviceName: *d.DeviceName}
		if d.DriverVersion != nil {
			sig.Version = *d.DriverVersion
		}
		if d.IsSigned != nil {
			sig.Signed = *d.IsSigned
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// msStorageDriverFailurePredictStatus lives in the root\wmi namespace.
type msStorageDriverFailurePredictStatus struct {
	InstanceName   string
	PredictFailure bool
}

// FailurePrediction queries SMART-equivalent failure prediction. The
// query needs elevation on most systems; the resulting error is the
// caller's signal to report the metric as Unknown.
func (systemDiskProvider) FailurePrediction(ctx context.Context) (map[string]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var dst []msStorageDriverFailurePredictStatus
	q := "SELECT InstanceName, PredictFailure FROM MSStorageDriver_FailurePredictStatus"
	if err := wmi.QueryNamespace(q, &dst, `root\wmi`); err != nil {
		return nil, err
	}

	prediction := make(map[string]bool, len(dst))
	for _, d := range dst {
		prediction[d.InstanceName] = d.PredictFailure
	}
	return prediction, nil
}
