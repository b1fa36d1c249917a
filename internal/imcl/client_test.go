package imcl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"os/user"
	"strings"
	"testing"

	"github.com/conn-castle/imctl/internal/procs"
	"github.com/conn-castle/imctl/internal/userctx"
)

// fakeSystem scripts every operation the driver performs and records the
// order in seq so tests can assert stop-run-chown sequencing.
type fakeSystem struct {
	seq *[]string

	files     map[string][]byte
	missing   map[string]bool
	accessErr map[string]error
	cwd       string
	chdirs    []string
	chdirFail map[string]error
	euid      int
	runOut    []byte
	runErr    error
	cmds      []*exec.Cmd
	users     map[string]*user.User
	groups    map[string]*user.Group
	walk      []string
	lchowns   []string
	lchownErr error
}

func (f *fakeSystem) ReadFile(name string) ([]byte, error) {
	if data, ok := f.files[name]; ok {
		return data, nil
	}
	return nil, fs.ErrNotExist
}

func (f *fakeSystem) Stat(name string) (os.FileInfo, error) {
	if f.missing[name] {
		return nil, fs.ErrNotExist
	}
	return nil, nil
}

func (f *fakeSystem) Access(path string, _ uint32) error {
	return f.accessErr[path]
}

func (f *fakeSystem) Getwd() (string, error) {
	return f.cwd, nil
}

func (f *fakeSystem) Chdir(dir string) error {
	if err := f.chdirFail[dir]; err != nil {
		return err
	}
	f.chdirs = append(f.chdirs, dir)
	return nil
}

func (f *fakeSystem) Geteuid() int {
	return f.euid
}

func (f *fakeSystem) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	*f.seq = append(*f.seq, "run")
	f.cmds = append(f.cmds, cmd)
	return f.runOut, f.runErr
}

func (f *fakeSystem) LookupUser(name string) (*user.User, error) {
	if u, ok := f.users[name]; ok {
		return u, nil
	}
	return nil, user.UnknownUserError(name)
}

func (f *fakeSystem) LookupGroup(name string) (*user.Group, error) {
	if g, ok := f.groups[name]; ok {
		return g, nil
	}
	return nil, user.UnknownGroupError(name)
}

func (f *fakeSystem) WalkDir(_ string, fn fs.WalkDirFunc) error {
	for _, p := range f.walk {
		if err := fn(p, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeSystem) Lchown(name string, uid, gid int) error {
	if f.lchownErr != nil {
		return f.lchownErr
	}
	*f.seq = append(*f.seq, "chown")
	f.lchowns = append(f.lchowns, fmt.Sprintf("%s %d:%d", name, uid, gid))
	return nil
}

type fakeStopper struct {
	seq     *[]string
	targets []string
	report  procs.KillReport
	err     error
}

func (f *fakeStopper) Stop(target string) (procs.KillReport, error) {
	*f.seq = append(*f.seq, "stop")
	f.targets = append(f.targets, target)
	return f.report, f.err
}

func newFakes(u userctx.User) (*Client, *fakeSystem, *fakeStopper) {
	seq := &[]string{}
	system := &fakeSystem{
		seq:  seq,
		cwd:  "/prev",
		euid: u.UID,
	}
	stopper := &fakeStopper{seq: seq}
	client := &Client{
		Tool:    "/opt/IBM/InstallationManager/eclipse/tools/imcl",
		User:    u,
		system:  system,
		stopper: stopper,
	}
	return client, system, stopper
}

func TestInstallStopsRunsAndChowns(t *testing.T) {
	client, system, stopper := newFakes(rootUser)
	spec := wasSpec()
	system.walk = []string{spec.Target, spec.Target + "/properties"}

	out, err := client.Install(spec)
	if err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if out != "" {
		t.Fatalf("unexpected output %q", out)
	}

	wantSeq := []string{"stop", "run", "chown", "chown"}
	if strings.Join(*system.seq, " ") != strings.Join(wantSeq, " ") {
		t.Fatalf("sequence = %v, want %v", *system.seq, wantSeq)
	}
	if stopper.targets[0] != spec.Target {
		t.Fatalf("stopped %q, want %q", stopper.targets[0], spec.Target)
	}

	argv := system.cmds[0].Args
	if argv[0] != client.Tool {
		t.Fatalf("argv[0] = %q", argv[0])
	}
	if strings.Join(argv[1:], " ") != strings.Join(InstallArgs(spec, rootUser), " ") {
		t.Fatalf("unexpected argv %v", argv)
	}

	// root installs own the tree as root:root.
	if system.lchowns[0] != spec.Target+" 0:0" {
		t.Fatalf("unexpected chown %q", system.lchowns[0])
	}
}

func TestInstallChownUsesDeclaredOwnerAndGroup(t *testing.T) {
	client, system, _ := newFakes(rootUser)
	spec := wasSpec()
	spec.Owner = "wasadm"
	spec.Group = "wasgrp"
	system.users = map[string]*user.User{"wasadm": {Uid: "1200", Gid: "1201"}}
	system.groups = map[string]*user.Group{"wasgrp": {Gid: "1300"}}
	system.walk = []string{spec.Target}

	if _, err := client.Install(spec); err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if system.lchowns[0] != spec.Target+" 1200:1300" {
		t.Fatalf("unexpected chown %q", system.lchowns[0])
	}
}

func TestInstallSkipsChownWhenUnmanaged(t *testing.T) {
	client, system, _ := newFakes(rootUser)
	spec := wasSpec()
	off := false
	spec.ManageOwnership = &off
	system.walk = []string{spec.Target}

	if _, err := client.Install(spec); err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if len(system.lchowns) != 0 {
		t.Fatalf("ownership pass ran: %v", system.lchowns)
	}
}

func TestInstallSkipsChownWhenTargetAbsent(t *testing.T) {
	client, system, _ := newFakes(rootUser)
	spec := wasSpec()
	system.missing = map[string]bool{spec.Target: true}

	if _, err := client.Install(spec); err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if len(system.lchowns) != 0 {
		t.Fatalf("ownership pass ran on absent target: %v", system.lchowns)
	}
}

func TestInstallAbortsWhenStopFails(t *testing.T) {
	client, system, stopper := newFakes(rootUser)
	stopper.err = procs.ErrKill

	_, err := client.Install(wasSpec())
	if !errors.Is(err, procs.ErrKill) {
		t.Fatalf("expected kill error, got %v", err)
	}
	if len(system.cmds) != 0 {
		t.Fatal("imcl ran despite busy target")
	}
}

func TestInstallSurfacesRunFailure(t *testing.T) {
	client, system, _ := newFakes(rootUser)
	system.runOut = []byte("CRIMA1161E ERROR: target directory is locked\n")
	system.runErr = errors.New("exit status 1")
	system.walk = []string{"/opt/IBM/WebSphere"}

	out, err := client.Install(wasSpec())
	if !errors.Is(err, ErrExec) {
		t.Fatalf("expected ErrExec, got %v", err)
	}
	if !strings.Contains(out, "CRIMA1161E") {
		t.Fatalf("combined output not returned: %q", out)
	}
	if len(system.lchowns) != 0 {
		t.Fatal("ownership pass ran after a failed install")
	}
}

func TestUninstallStopsThenRuns(t *testing.T) {
	client, system, stopper := newFakes(rootUser)
	spec := wasSpec()

	if _, err := client.Uninstall(spec); err != nil {
		t.Fatalf("Uninstall error: %v", err)
	}
	wantSeq := []string{"stop", "run"}
	if strings.Join(*system.seq, " ") != strings.Join(wantSeq, " ") {
		t.Fatalf("sequence = %v, want %v", *system.seq, wantSeq)
	}
	if stopper.targets[0] != spec.Target {
		t.Fatalf("stopped %q", stopper.targets[0])
	}
	if strings.Join(system.cmds[0].Args[1:], " ") != strings.Join(UninstallArgs(spec), " ") {
		t.Fatalf("unexpected argv %v", system.cmds[0].Args)
	}
}

func TestChownWrapsWalkErrors(t *testing.T) {
	client, system, _ := newFakes(rootUser)
	system.walk = []string{"/opt/IBM/WebSphere"}
	system.lchownErr = errors.New("operation not permitted")

	err := client.Chown(wasSpec())
	if err == nil || !strings.Contains(err.Error(), "change ownership of /opt/IBM/WebSphere") {
		t.Fatalf("expected wrapped walk error, got %v", err)
	}
}

func TestChownUnknownGroup(t *testing.T) {
	client, _, _ := newFakes(rootUser)
	spec := wasSpec()
	spec.Group = "ghost"

	err := client.Chown(spec)
	if err == nil || !strings.Contains(err.Error(), `resolve group "ghost"`) {
		t.Fatalf("expected group lookup error, got %v", err)
	}
}

func TestChownUnknownOwner(t *testing.T) {
	client, _, _ := newFakes(rootUser)
	spec := wasSpec()
	spec.Owner = "ghost"

	err := client.Chown(spec)
	if err == nil || !strings.Contains(err.Error(), `resolve owner "ghost"`) {
		t.Fatalf("expected owner lookup error, got %v", err)
	}
}
