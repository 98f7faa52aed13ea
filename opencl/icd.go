package opencl

// This file implements discovery of installed OpenCL drivers through the
// ICD (installable client driver) registry, without loading anything: every
// vendor drops a small *.icd file under /etc/OpenCL/vendors naming its
// implementation library, which the ICD loader (the libOpenCL this package
// links against when built with the "opencl" tag) dispatches to at run time.
// AvailableDrivers is purely diagnostic, used by cmd/clinfo and useful in
// error messages when no platform is found.

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// ICDVendorsPathEnv is the name of the environment variable that
	// overrides the directories searched for *.icd registry files. It may
	// hold a ":" separated list.
	ICDVendorsPathEnv = "OCL_ICD_VENDORS"

	// DefaultICDVendorsDir is the standard ICD registry directory on linux.
	DefaultICDVendorsDir = "/etc/OpenCL/vendors"
)

// icdVendorDirs returns the directories to scan for *.icd files.
func icdVendorDirs() []string {
	if dirs, found := os.LookupEnv(ICDVendorsPathEnv); found {
		return slices.DeleteFunc(strings.Split(dirs, ":"), func(p string) bool {
			return p == "" // Remove empty paths.
		})
	}
	return []string{DefaultICDVendorsDir}
}

// AvailableDrivers scans the ICD registry and returns a map from the
// registry entry name (the *.icd file name without extension) to the
// resolved path of the vendor library it points to. Entries whose library
// cannot be found on the system are skipped with a warning.
//
// Directories are taken from OCL_ICD_VENDORS if set, otherwise
// /etc/OpenCL/vendors is used.
func AvailableDrivers() map[string]string {
	return availableDriversIn(icdVendorDirs(), systemLibraryPaths())
}

// AvailableDriversIn is like AvailableDrivers but scans the given registry
// directories instead of the defaults.
func AvailableDriversIn(vendorDirs []string) map[string]string {
	return availableDriversIn(vendorDirs, systemLibraryPaths())
}

func availableDriversIn(vendorDirs, libraryPaths []string) map[string]string {
	drivers := make(map[string]string)
	for _, dir := range vendorDirs {
		entries, err := filepath.Glob(path.Join(dir, "*.icd"))
		if err != nil {
			continue
		}
		for _, icdFile := range entries {
			name := strings.TrimSuffix(path.Base(icdFile), ".icd")
			if _, found := drivers[name]; found {
				// We already have a driver with that name.
				continue
			}
			libName, err := readICDFile(icdFile)
			if err != nil {
				klog.Warningf("Skipping ICD registry entry %q: %v", icdFile, err)
				continue
			}
			libPath, found := resolveLibrary(libName, libraryPaths)
			if !found {
				klog.Warningf("ICD registry entry %q points to library %q, which was not found in the system library paths", icdFile, libName)
				continue
			}
			drivers[name] = libPath
		}
	}
	return drivers
}

// readICDFile returns the library name (or path) recorded in an *.icd file:
// its first non-empty line.
func readICDFile(icdFile string) (string, error) {
	contents, err := os.ReadFile(icdFile)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(contents), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
	return "", errors.Errorf("registry file %q is empty", icdFile)
}

// resolveLibrary finds the full path of a vendor library: absolute paths
// are checked directly, bare names are searched in libraryPaths.
func resolveLibrary(libName string, libraryPaths []string) (string, bool) {
	if path.IsAbs(libName) {
		if fileExists(libName) {
			return libName, true
		}
		return "", false
	}
	for _, dir := range libraryPaths {
		candidate := path.Join(dir, libName)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// systemLibraryPaths returns the directories dynamic libraries are loaded
// from: LD_LIBRARY_PATH entries followed by the /etc/ld.so.conf directories
// (recursively expanding its include lines).
func systemLibraryPaths() []string {
	var paths []string
	for _, ldPath := range strings.Split(os.Getenv("LD_LIBRARY_PATH"), ":") {
		if ldPath == "" || !path.IsAbs(ldPath) {
			// No empty or relative paths.
			continue
		}
		paths = append(paths, ldPath)
	}
	return loadLibraryPaths(paths, "/etc/ld.so.conf")
}

// loadLibraryPaths appends to paths the directories listed in an
// ld.so.conf style file, following "include" lines.
func loadLibraryPaths(paths []string, fileWithIncludes string) []string {
	klog.V(2).Infof("Loading paths for libraries from %q", fileWithIncludes)
	file, err := os.Open(fileWithIncludes)
	if err != nil {
		klog.V(2).Infof("Failed to load paths for libraries from %q: %v", fileWithIncludes, err)
		return paths
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			// Empty line or comment.
		case strings.HasPrefix(line, "include "):
			pattern := strings.TrimSpace(strings.TrimPrefix(line, "include "))
			klog.V(2).Infof("loadLibraryPaths: include %q", pattern)
			files, err := filepath.Glob(pattern)
			if err != nil {
				klog.Errorf("Failed to load paths for libraries while expanding include entry %q: %v", pattern, err)
				continue
			}
			for _, includeFile := range files {
				paths = loadLibraryPaths(paths, includeFile)
			}
		default:
			klog.V(2).Infof("loadLibraryPaths: path %q", line)
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		klog.Errorf("Error while loading paths for libraries from %q: %v", fileWithIncludes, err)
	}
	return paths
}
