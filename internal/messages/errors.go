package messages

// Error formats for the registry, response-file, state, and execution layers.
const (
	// RegistryMissingFmt reports an absent installation registry.
	RegistryMissingFmt        = "%w: no installation registry at %s"
	RegistryOpenFmt           = "open installation registry %s: %w"
	RegistryDecodeFmt         = "%w: installation registry %s: %v"
	RegistryNoPathFmt         = "%w: profile %q in %s has no installLocation property"
	RegistryNoIDFmt           = "%w: profile in %s is missing its id attribute"
	RegistryUnitNoIDFmt       = "%w: offering/fix under profile %q in %s is missing its id attribute"
	RegistryVersionNoValueFmt = "%w: version element under %q in %s has no value attribute"

	ResponseMissingFmt    = "%w: no response file at %s"
	ResponseOpenFmt       = "open response file %s: %w"
	ResponseDecodeFmt     = "%w: response file %s: %v"
	ResponseIncompleteFmt = "%w: response file %s is missing %s"

	StateMissing           = "no desired-state file found (searched --file, ./imctl.toml, /etc/imctl/imctl.toml)"
	StateReadFmt           = "read desired-state file %s: %w"
	StateDecodeFmt         = "parse desired-state file %s: %v"
	StateUnknownKeysFmt    = "%w: %s contains unrecognized keys: %v"
	StateUnsupportedExtFmt = "unsupported desired-state format %q (want .toml, .yaml, or .yml)"
	StateNoPackages        = "%w: %s declares no packages"
	StateNameRequiredFmt   = "%w: package %d in %s needs a name"
	StateDuplicateNameFmt  = "%w: package name %q appears more than once in %s"
	StateEnsureInvalidFmt  = "%w: package %q: ensure must be \"present\" or \"absent\", not %q"
	StateSpecIncompleteFmt = "%w: package %q needs package, version, and target (or a response file)"
	StateNoRepositoriesFmt = "%w: package %q declares no repositories to install from"
	StateJDKPairFmt        = "%w: package %q: jdk_package and jdk_version must be set together"

	UserLookupFmt = "%w: %v"
	UserNoHomeFmt = "%w: user %q has no resolvable home directory"

	CLIMissingFmt        = "%w: Installation Manager is not recorded in %s"
	CLIRegistryAbsentFmt = "%w: no Installation Manager metadata at %s"
	CLIDecodeFmt         = "%w: installed.xml %s: %v"
	CLINotExecutableFmt  = "%w: %s is not executable"
	CLIBinaryMissingFmt  = "%w: imcl binary not found at %s"

	ExecFailedFmt = "%w: %s %s (user %s)\noutput:\n%s"

	ProcsListFmt = "list processes with %q: %w"
	ProcsKillFmt = "%w: could not stop process(es) %s holding %s; stop them manually and retry\nkill output:\n%s"

	ChownLookupOwnerFmt = "resolve owner %q: %w"
	ChownLookupGroupFmt = "resolve group %q: %w"
	ChownWalkFmt        = "change ownership of %s: %w"
)
