package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conn-castle/imctl/internal/state"
)

func TestAddAppendsPackageEntry(t *testing.T) {
	path := writeStateFile(t)

	out, err := runCommand(t, "add", "com.ibm.websphere.ND.v90",
		"--version", "9.0.5.14",
		"--target", "/opt/IBM/WebSphere90",
		"--user", "wasadm",
		"--repository", "/mnt/repo/was90",
		"--file", path)
	if err != nil {
		t.Fatalf("add error: %v", err)
	}
	if !strings.Contains(out, "Added com.ibm.websphere.ND.v90 to "+path) {
		t.Fatalf("expected confirmation, got:\n%s", out)
	}

	doc, err := state.Load(path)
	if err != nil {
		t.Fatalf("reload state file: %v", err)
	}
	if len(doc.Packages) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(doc.Packages))
	}
	added := doc.Packages[1]
	if added.Package != "com.ibm.websphere.ND.v90" || added.Target != "/opt/IBM/WebSphere90" {
		t.Fatalf("unexpected appended spec: %+v", added)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read state file: %v", err)
	}
	if !strings.HasPrefix(string(data), testStateContent) {
		t.Fatalf("expected original content preserved verbatim, got:\n%s", data)
	}
}

func TestAddAbsentEntryNeedsNoRepository(t *testing.T) {
	path := writeStateFile(t)

	_, err := runCommand(t, "add", "com.ibm.websphere.ND.v85",
		"--ensure", "absent",
		"--version", "8.5.5.20",
		"--target", "/opt/IBM/WebSphere85",
		"--file", path)
	if err != nil {
		t.Fatalf("add error: %v", err)
	}

	doc, err := state.Load(path)
	if err != nil {
		t.Fatalf("reload state file: %v", err)
	}
	if doc.Packages[1].Present() {
		t.Fatal("expected appended entry to be absent")
	}
}

func TestAddRejectsDuplicateLabel(t *testing.T) {
	path := writeStateFile(t)

	_, err := runCommand(t, "add", "com.ibm.websphere.liberty.v85",
		"--version", "8.5.5016.20190801_0951",
		"--target", "/opt/IBM/Liberty",
		"--repository", "/mnt/repo/liberty",
		"--file", path)
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if !strings.Contains(err.Error(), "already declared") {
		t.Fatalf("expected duplicate message, got %v", err)
	}
}

func TestAddCustomNameAvoidsDuplicate(t *testing.T) {
	path := writeStateFile(t)

	_, err := runCommand(t, "add", "com.ibm.websphere.liberty.v85",
		"--name", "liberty-secondary",
		"--version", "8.5.5016.20190801_0951",
		"--target", "/opt/IBM/Liberty2",
		"--repository", "/mnt/repo/liberty",
		"--file", path)
	if err != nil {
		t.Fatalf("add error: %v", err)
	}

	doc, err := state.Load(path)
	if err != nil {
		t.Fatalf("reload state file: %v", err)
	}
	if doc.Packages[1].Label() != "liberty-secondary" {
		t.Fatalf("expected custom label, got %q", doc.Packages[1].Label())
	}
}

func TestAddRejectsMissingStateFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "imctl.toml")
	_, err := runCommand(t, "add", "com.ibm.websphere.ND.v90",
		"--version", "9.0.5.14",
		"--target", "/opt/IBM/WebSphere90",
		"--repository", "/mnt/repo/was90",
		"--file", missing)
	if err == nil {
		t.Fatal("expected missing-file error")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing-file message, got %v", err)
	}
}

func TestAddRejectsYAMLStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imctl.yaml")
	if err := os.WriteFile(path, []byte("package: []\n"), 0o644); err != nil {
		t.Fatalf("write yaml state: %v", err)
	}
	_, err := runCommand(t, "add", "com.ibm.websphere.ND.v90",
		"--version", "9.0.5.14",
		"--target", "/opt/IBM/WebSphere90",
		"--repository", "/mnt/repo/was90",
		"--file", path)
	if err == nil {
		t.Fatal("expected TOML-only error")
	}
	if !strings.Contains(err.Error(), "only supports TOML") {
		t.Fatalf("expected TOML-only message, got %v", err)
	}
}

func TestAddValidatesCombinedDocument(t *testing.T) {
	path := writeStateFile(t)

	// Present entry without a repository or response file fails validation.
	_, err := runCommand(t, "add", "com.ibm.websphere.ND.v90",
		"--version", "9.0.5.14",
		"--target", "/opt/IBM/WebSphere90",
		"--file", path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read state file: %v", readErr)
	}
	if string(data) != testStateContent {
		t.Fatalf("state file must be untouched after failed add, got:\n%s", data)
	}
}

func TestAddPreservesFilePermissions(t *testing.T) {
	path := writeStateFile(t)
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	_, err := runCommand(t, "add", "com.ibm.websphere.ND.v90",
		"--version", "9.0.5.14",
		"--target", "/opt/IBM/WebSphere90",
		"--repository", "/mnt/repo/was90",
		"--file", path)
	if err != nil {
		t.Fatalf("add error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600 preserved, got %v", info.Mode().Perm())
	}
}
