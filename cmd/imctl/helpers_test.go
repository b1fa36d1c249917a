package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/conn-castle/imctl/internal/reconcile"
	"github.com/conn-castle/imctl/internal/registry"
	"github.com/conn-castle/imctl/internal/state"
	"github.com/conn-castle/imctl/internal/userctx"
)

const testStateContent = `[[package]]
package = "com.ibm.websphere.liberty.v85"
version = "8.5.5016.20190801_0951"
target = "/opt/IBM/Liberty"
user = "wasadm"
repositories = ["/mnt/repo/liberty"]
`

// writeStateFile writes a valid single-package state file into a fresh
// temp dir and returns its path.
func writeStateFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imctl.toml")
	if err := os.WriteFile(path, []byte(testStateContent), 0o644); err != nil {
		t.Fatalf("write state file: %v", err)
	}
	return path
}

// overwrite replaces the file at path.
func overwrite(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// runCommand runs the CLI against args with captured output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(append([]string{"imctl"}, args...), &out, &out)
	return out.String(), err
}

// stubInventory pins the registry view plans are built against.
func stubInventory(t *testing.T, packages []registry.Package, err error) {
	t.Helper()
	orig := loadInventoryFunc
	t.Cleanup(func() { loadInventoryFunc = orig })
	loadInventoryFunc = func(specs []state.PackageSpec) (reconcile.Inventory, error) {
		if err != nil {
			return reconcile.Inventory{}, err
		}
		return reconcile.Inventory{
			User:     userctx.User{Name: "wasadm", UID: 1500, GID: 1500, Home: "/home/wasadm"},
			Packages: packages,
		}, nil
	}
}

// stubResolveUser resolves every name to a synthetic test account.
func stubResolveUser(t *testing.T) {
	t.Helper()
	orig := resolveFunc
	t.Cleanup(func() { resolveFunc = orig })
	resolveFunc = func(name string) (userctx.User, error) {
		if name == "" {
			name = "current"
		}
		return userctx.User{Name: name, UID: 1500, GID: 1500, Home: "/home/" + name}, nil
	}
}

// fakeInstaller records imcl invocations.
type fakeInstaller struct {
	installs     []state.PackageSpec
	uninstalls   []state.PackageSpec
	installErr   error
	uninstallErr error
}

func (f *fakeInstaller) Install(spec state.PackageSpec) (string, error) {
	if f.installErr != nil {
		return "", f.installErr
	}
	f.installs = append(f.installs, spec)
	return "Installed " + spec.Package, nil
}

func (f *fakeInstaller) Uninstall(spec state.PackageSpec) (string, error) {
	if f.uninstallErr != nil {
		return "", f.uninstallErr
	}
	f.uninstalls = append(f.uninstalls, spec)
	return "Uninstalled " + spec.Package, nil
}

// stubClient wires every resolved user to the same fake installer.
func stubClient(t *testing.T, fake *fakeInstaller) {
	t.Helper()
	orig := newClientFunc
	t.Cleanup(func() { newClientFunc = orig })
	newClientFunc = func(u userctx.User) (installer, error) { return fake, nil }
}

// installedLiberty is the registry record matching testStateContent.
func installedLiberty() registry.Package {
	return registry.Package{
		ProductName: "IBM WebSphere Application Server Liberty",
		Path:        "/opt/IBM/Liberty",
		ID:          "com.ibm.websphere.liberty.v85",
		Version:     "8.5.5016.20190801_0951",
	}
}
