// Package procs finds and stops processes holding an installation target
// before it is mutated. Installation Manager refuses to touch a directory
// with live file handles, so apply clears them first.
package procs

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/conn-castle/imctl/internal/logging"
	"github.com/conn-castle/imctl/internal/messages"
)

// ErrKill reports that processes holding the target could not be stopped.
var ErrKill = errors.New("target directory is busy")

// Variant is the platform process-listing flavor, resolved once from GOOS
// rather than switched per call.
type Variant struct {
	OS   string
	List []string
}

// VariantFor maps a GOOS value to its ps invocation. The BSD-style flags
// on Linux and the bare www form on AIX match what those platforms'
// administrators expect in logs; everything else gets the POSIX form.
func VariantFor(goos string) Variant {
	switch goos {
	case "linux":
		return Variant{OS: goos, List: []string{"ps", "auxwww"}}
	case "aix":
		return Variant{OS: goos, List: []string{"ps", "www"}}
	default:
		return Variant{OS: goos, List: []string{"ps", "-ef"}}
	}
}

// Command renders the listing invocation for display.
func (v Variant) Command() string {
	return strings.Join(v.List, " ")
}

// System abstracts command execution so tests can stand in shell stubs.
type System interface {
	CombinedOutput(name string, args ...string) ([]byte, error)
}

// RealSystem implements System using os/exec.
type RealSystem struct{}

// CombinedOutput runs name with args and returns its combined stdout and stderr.
func (RealSystem) CombinedOutput(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Terminator stops processes holding a target directory.
type Terminator struct {
	variant Variant
	system  System
}

// NewTerminator returns a Terminator for the current platform.
func NewTerminator() *Terminator {
	return NewTerminatorWith(VariantFor(runtime.GOOS), RealSystem{})
}

// NewTerminatorWith returns a Terminator with an explicit variant and
// system, for tests and doctor probes.
func NewTerminatorWith(variant Variant, system System) *Terminator {
	return &Terminator{variant: variant, system: system}
}

// KillReport records what Stop did.
type KillReport struct {
	Target  string
	PIDs    []string
	Output  string
	Stopped bool
}

// Holding returns the pids of processes whose listing line mentions
// target.
func (t *Terminator) Holding(target string) ([]string, error) {
	out, err := t.system.CombinedOutput(t.variant.List[0], t.variant.List[1:]...)
	if err != nil {
		return nil, fmt.Errorf(messages.ProcsListFmt, t.variant.Command(), err)
	}
	return pidsFromListing(string(out), target), nil
}

// Stop kills every process holding target with a single kill invocation.
// No holders is a no-op. A failed kill surfaces the pids, the kill
// output, and what the operator should do about it.
func (t *Terminator) Stop(target string) (KillReport, error) {
	pids, err := t.Holding(target)
	if err != nil {
		return KillReport{}, err
	}
	if len(pids) == 0 {
		return KillReport{}, nil
	}

	logger := logging.L()
	logger.Debug().Str("target", target).Strs("pids", pids).Msg("stopping processes holding target")
	out, err := t.system.CombinedOutput("kill", pids...)
	if err != nil {
		report := KillReport{Target: target, PIDs: pids, Output: string(out)}
		return report, fmt.Errorf(messages.ProcsKillFmt, ErrKill, strings.Join(pids, ", "), target, strings.TrimSpace(string(out)))
	}
	return KillReport{Target: target, PIDs: pids, Output: string(out), Stopped: true}, nil
}

// pidsFromListing keeps every line that mentions target and extracts its
// second whitespace-separated field, the pid column in both the BSD and
// POSIX listing formats. Lines too short to have one are skipped.
func pidsFromListing(listing, target string) []string {
	var pids []string
	for _, line := range strings.Split(listing, "\n") {
		if !strings.Contains(line, target) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		pids = append(pids, fields[1])
	}
	return pids
}
