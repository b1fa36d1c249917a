package messages

// Doctor messages for environment diagnostics.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check that this host is ready for package reconciliation"
	DoctorLong  = "Check that this host is ready for package reconciliation.\n\nDoctor loads the desired-state file, resolves the declared users, looks up\nthe imcl binary and the installation registry, and scans for processes that\nhold a declared target directory. Nothing is modified."

	DoctorHeaderFmt     = "imctl doctor: checking %s\n"
	DoctorResultLineFmt = "%s %-12s %s\n"

	DoctorCheckNameState    = "State"
	DoctorCheckNameCLI      = "Installer"
	DoctorCheckNameRegistry = "Registry"
	DoctorCheckNameUsers    = "Users"
	DoctorCheckNameHost     = "Host"
	DoctorCheckNameBusy     = "Busy targets"

	DoctorStateLoadedFmt = "state file %s declares %d package(s)"
	DoctorStateFailedFmt = "state file could not be loaded: %v"
	DoctorStateRecommend = "fix the state file or pass --file pointing at a valid one"

	DoctorCLIFoundFmt         = "imcl found at %s"
	DoctorCLIMissingFmt       = "imcl could not be located: %v"
	DoctorCLIMissingRecommend = "install IBM Installation Manager or run doctor as the installing user"
	DoctorCLINotExecRecommend = "check permissions on the imcl binary"
	DoctorCLINoUser           = "no acting user could be resolved; skipping installer lookup"

	DoctorRegistryFmt              = "registry %s holds %d package record(s)"
	DoctorRegistryMissingFmt       = "no installation registry for user %q: %v"
	DoctorRegistryMissingRecommend = "expected if nothing has been installed yet; otherwise check the path"
	DoctorRegistryParseFmt         = "registry for user %q is unreadable: %v"
	DoctorRegistryParseRecommend   = "the registry file is malformed; repair it with Installation Manager"

	DoctorUserOKFmt     = "user %q resolves (home %s)"
	DoctorUserFailFmt   = "user %q cannot be resolved: %v"
	DoctorUserRecommend = "declared users must exist on this host before apply"

	DoctorHostFmt     = "%s %s (%s); process listing via %q"
	DoctorHostWarnFmt = "host information unavailable: %v"

	DoctorBusyNone        = "no running processes reference the declared target(s)"
	DoctorBusyFoundFmt    = "%d running process(es) reference %s: %s"
	DoctorBusyDetailFmt   = "pid %d (%s)"
	DoctorBusyRecommend   = "apply will stop these processes before touching the target"
	DoctorBusyScanWarnFmt = "process scan unavailable: %v"

	DoctorOKPrefix     = "[ OK ]"
	DoctorWarnPrefix   = "[WARN]"
	DoctorFailPrefix   = "[FAIL]"
	DoctorRecommendFmt = "       -> %s\n"

	DoctorAllGood     = "All checks passed."
	DoctorHasFailures = "doctor found problems"
)
