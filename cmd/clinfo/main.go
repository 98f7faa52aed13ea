// clinfo lists the installed OpenCL drivers (ICD registry), platforms,
// devices and their capabilities. It is a diagnostic companion to the
// opencl package; build it with `-tags opencl` to query live platforms.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/janpfeifer/gonb/common"
	"github.com/janpfeifer/must"
	"github.com/jessevdk/go-flags"
	"k8s.io/klog/v2"

	"github.com/gomlx/gocl/opencl"
)

type config struct {
	DeviceType   string `short:"t" long:"type" default:"all" description:"Device type to list: all, default, cpu, gpu or accelerator"`
	VendorsDir   string `long:"vendors" description:"ICD registry directory to scan instead of the system default"`
	RegistryOnly bool   `long:"registry-only" description:"Only list the ICD registry, do not touch the native layer"`
}

var deviceTypeByName = map[string]opencl.DeviceType{
	"all":         opencl.DeviceTypeAll,
	"default":     opencl.DeviceTypeDefault,
	"cpu":         opencl.DeviceTypeCPU,
	"gpu":         opencl.DeviceTypeGPU,
	"accelerator": opencl.DeviceTypeAccelerator,
}

func main() {
	klog.InitFlags(nil)
	var cfg config
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	deviceType, found := deviceTypeByName[cfg.DeviceType]
	if !found {
		klog.Exitf("Unknown device type %q, expected one of: all, default, cpu, gpu, accelerator", cfg.DeviceType)
	}

	listRegistry(cfg)
	if cfg.RegistryOnly {
		return
	}
	listPlatforms(deviceType)
}

func listRegistry(cfg config) {
	var drivers map[string]string
	if cfg.VendorsDir != "" {
		drivers = opencl.AvailableDriversIn([]string{common.ReplaceTildeInDir(cfg.VendorsDir)})
	} else {
		drivers = opencl.AvailableDrivers()
	}
	fmt.Printf("ICD registry: %d driver(s)\n", len(drivers))
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s -> %s\n", name, drivers[name])
	}
}

func listPlatforms(deviceType opencl.DeviceType) {
	platforms := must.M1(opencl.Platforms())
	fmt.Printf("\n%d platform(s)\n", len(platforms))
	for _, platform := range platforms {
		fmt.Printf("\n%s\n", platform)
		fmt.Printf("  Profile:    %s\n", platform.Profile())
		fmt.Printf("  Extensions: %s\n", platform.Extensions())

		ctx, err := platform.NewContext(deviceType)
		if err != nil {
			if opencl.CodeOf(err) == opencl.DeviceNotFound {
				fmt.Printf("  No %s devices.\n", deviceType)
				continue
			}
			klog.Exitf("Failed to create %s context on %s: %+v", deviceType, platform, err)
		}
		for ii, device := range ctx.Devices() {
			fmt.Printf("  Device %02d: %s\n", ii, device)
			printCapability(device.MaxWorkGroupSize, "Max work group size", "%d")
			printCapability(device.MaxComputeUnits, "Compute units", "%d")
			printCapability(device.GlobalMemSize, "Global memory", "%d bytes")
			printCapability(device.LocalMemSize, "Local memory", "%d bytes")
		}
		must.M(ctx.Destroy())
	}
}

func printCapability(query func() (uint64, error), name, format string) {
	value, err := query()
	if err != nil {
		fmt.Printf("    %-20s <unavailable: %v>\n", name+":", err)
		return
	}
	fmt.Printf("    %-20s "+format+"\n", name+":", value)
}
