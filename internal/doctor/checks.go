package doctor

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/conn-castle/imctl/internal/imcl"
	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/procs"
	"github.com/conn-castle/imctl/internal/registry"
	"github.com/conn-castle/imctl/internal/state"
	"github.com/conn-castle/imctl/internal/userctx"
)

var (
	findStateFunc    = state.Find
	loadStateFunc    = state.Load
	loadLenientFunc  = state.LoadLenient
	resolveUserFunc  = userctx.Resolve
	locateFunc       = imcl.Locate
	readRegistryFunc = registry.ReadFor
	hostInfoFunc     = host.Info
	scanFunc         = scanProcesses
)

// CheckState locates and loads the desired-state file. When validation
// fails but the file still parses, CheckState returns a FAIL result AND
// the leniently-parsed document so downstream checks can still run.
func CheckState(flagPath string) ([]Result, *state.Document) {
	var results []Result
	path, err := findStateFunc(flagPath)
	if err != nil {
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameState,
			Message:        fmt.Sprintf(messages.DoctorStateFailedFmt, err),
			Recommendation: messages.DoctorStateRecommend,
		})
		return results, nil
	}

	doc, err := loadStateFunc(path)
	if err == nil {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameState,
			Message:   fmt.Sprintf(messages.DoctorStateLoadedFmt, path, len(doc.Packages)),
		})
		return results, doc
	}

	results = append(results, Result{
		Status:         StatusFail,
		CheckName:      messages.DoctorCheckNameState,
		Message:        fmt.Sprintf(messages.DoctorStateFailedFmt, err),
		Recommendation: messages.DoctorStateRecommend,
	})
	if !errors.Is(err, state.ErrValidation) {
		// Syntax error or unreadable file. Nothing downstream can use.
		return results, nil
	}

	// Validation failures still leave a parseable document. Load it
	// leniently so the user, registry, and busy-target checks run anyway.
	lenient, lenientErr := loadLenientFunc(path)
	if lenientErr != nil {
		return results, nil
	}
	return results, lenient
}

// CheckUsers resolves every distinct user the state file declares.
func CheckUsers(doc *state.Document) []Result {
	var results []Result
	seen := make(map[string]bool)
	for _, spec := range doc.Packages {
		if seen[spec.User] {
			continue
		}
		seen[spec.User] = true

		u, err := resolveUserFunc(spec.User)
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameUsers,
				Message:        fmt.Sprintf(messages.DoctorUserFailFmt, spec.User, err),
				Recommendation: messages.DoctorUserRecommend,
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameUsers,
			Message:   fmt.Sprintf(messages.DoctorUserOKFmt, u.Name, u.Home),
		})
	}
	return results
}

// ActingUser resolves the account doctor probes Installation Manager as:
// the first declared package's user, or the current user when the state
// file declares none or failed to load.
func ActingUser(doc *state.Document) (userctx.User, bool) {
	name := ""
	if doc != nil && len(doc.Packages) > 0 {
		name = doc.Packages[0].User
	}
	u, err := resolveUserFunc(name)
	if err != nil {
		return userctx.User{}, false
	}
	return u, true
}

// CheckInstaller looks up the imcl binary recorded in the acting user's
// Installation Manager metadata.
func CheckInstaller(u userctx.User) []Result {
	tool, err := locateFunc(u)
	if err != nil {
		recommendation := messages.DoctorCLIMissingRecommend
		if errors.Is(err, imcl.ErrNotExecutable) {
			recommendation = messages.DoctorCLINotExecRecommend
		}
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameCLI,
			Message:        fmt.Sprintf(messages.DoctorCLIMissingFmt, err),
			Recommendation: recommendation,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameCLI,
		Message:   fmt.Sprintf(messages.DoctorCLIFoundFmt, tool),
	}}
}

// CheckRegistry reads the acting user's installation registry. A missing
// registry is normal on a fresh host, so it warns rather than fails.
func CheckRegistry(u userctx.User) []Result {
	installed, err := readRegistryFunc(u)
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameRegistry,
			Message:        fmt.Sprintf(messages.DoctorRegistryMissingFmt, u.Name, err),
			Recommendation: messages.DoctorRegistryMissingRecommend,
		}}
	case err != nil:
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameRegistry,
			Message:        fmt.Sprintf(messages.DoctorRegistryParseFmt, u.Name, err),
			Recommendation: messages.DoctorRegistryParseRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameRegistry,
		Message:   fmt.Sprintf(messages.DoctorRegistryFmt, registry.DefaultPath(u), len(installed)),
	}}
}

// CheckHost reports the host platform and the process listing flavor the
// terminator will use on it.
func CheckHost() []Result {
	info, err := hostInfoFunc()
	if err != nil {
		return []Result{{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameHost,
			Message:   fmt.Sprintf(messages.DoctorHostWarnFmt, err),
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameHost,
		Message: fmt.Sprintf(messages.DoctorHostFmt,
			info.Platform, info.PlatformVersion, info.KernelArch,
			procs.VariantFor(runtime.GOOS).Command()),
	}}
}

// CheckBusyTargets scans running processes for command lines that
// reference a declared installation directory. Apply stops such
// processes, so hits warn rather than fail.
func CheckBusyTargets(doc *state.Document) []Result {
	running, err := scanFunc()
	if err != nil {
		return []Result{{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameBusy,
			Message:   fmt.Sprintf(messages.DoctorBusyScanWarnFmt, err),
		}}
	}

	var results []Result
	seen := make(map[string]bool)
	for _, spec := range doc.Packages {
		if spec.Target == "" || seen[spec.Target] {
			continue
		}
		seen[spec.Target] = true

		var details []string
		for _, p := range running {
			if strings.Contains(p.cmdline, spec.Target) {
				details = append(details, fmt.Sprintf(messages.DoctorBusyDetailFmt, p.pid, p.name))
			}
		}
		if len(details) > 0 {
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameBusy,
				Message:        fmt.Sprintf(messages.DoctorBusyFoundFmt, len(details), spec.Target, strings.Join(details, ", ")),
				Recommendation: messages.DoctorBusyRecommend,
			})
		}
	}
	if len(results) == 0 {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameBusy,
			Message:   messages.DoctorBusyNone,
		})
	}
	return results
}

// runningProcess is one visible process with its command line.
type runningProcess struct {
	pid     int32
	name    string
	cmdline string
}

// scanProcesses snapshots the pid, name, and command line of every
// process the current user can see. Processes that vanish mid-scan or
// hide their command line are skipped silently.
func scanProcesses() ([]runningProcess, error) {
	visible, err := process.Processes()
	if err != nil {
		return nil, err
	}
	out := make([]runningProcess, 0, len(visible))
	for _, p := range visible {
		cmdline, err := p.Cmdline()
		if err != nil || cmdline == "" {
			continue
		}
		name, _ := p.Name()
		out = append(out, runningProcess{pid: p.Pid, name: name, cmdline: cmdline})
	}
	return out, nil
}
