//go:build !windows

package provider

import "context"

// The registry and WMI surfaces only exist on Windows. On other
// platforms the constructors return stubs so a scan degrades to
// category-level "not evaluated" rather than failing to build.

type unsupportedStartupProvider struct{}

func NewStartupProvider() StartupProvider { return unsupportedStartupProvider{} }

func (unsupportedStartupProvider) Entries(context.Context) ([]StartupEntry, error) {
	return nil, ErrUnsupported
}

type unsupportedServiceProvider struct{}

func NewServiceProvider() ServiceProvider { return unsupportedServiceProvider{} }

func (unsupportedServiceProvider) AutoStartServices(context.Context) ([]ServiceInfo, error) {
	return nil, ErrUnsupported
}

type unsupportedDeviceProvider struct{}

func NewDeviceProvider() DeviceProvider { return unsupportedDeviceProvider{} }

func (unsupportedDeviceProvider) Devices(context.Context) ([]Device, error) {
	return nil, ErrUnsupported
}

func (unsupportedDeviceProvider) Signatures(context.Context) ([]DriverSignature, error) {
	return nil, ErrUnsupported
}

func (systemDiskProvider) FailurePrediction(context.Context) (map[string]bool, error) {
	return nil, ErrUnsupported
}
