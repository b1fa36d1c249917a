package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse   = "imctl"
	// RootShort is the short description for the root command.
	RootShort = "Declarative package management for IBM Installation Manager"
	RootLong  = "imctl reconciles the installed state of IBM Installation Manager packages\nagainst a declared desired state. It reads the vendor installation registry,\nplans the changes needed, and drives the imcl command-line tool to apply them."

	RootFileFlag      = "Path to the desired-state file (TOML or YAML)"
	RootDebugFlag     = "Enable debug logging"
	RootLogLevelFlag  = "Log level (trace, debug, info, warn, error)"
	RootLogFormatFlag = "Log format (console, json)"

	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// ApplyUse is the apply command name.
	ApplyUse   = "apply"
	ApplyShort = "Reconcile declared packages against the installation registry"
	ApplyLong  = "Apply loads the desired-state file, reads the Installation Manager\nregistry, and installs or uninstalls packages until the installed state\nmatches the declaration. Processes holding a target directory are stopped\nbefore that directory is mutated."

	ApplyDryRunFlag    = "Show the plan without changing anything"
	ApplyHeaderFmt     = "Reconciling %d package(s) from %s\n"
	ApplyNothingToDo   = "Nothing to do; installed state matches the declaration."
	ApplyDryRunNotice  = "Dry run: no changes were made."
	ApplyInstallingFmt = "Installing %s %s into %s\n"
	ApplyRemovingFmt   = "Removing %s %s from %s\n"
	ApplyDoneFmt       = "Applied %d change(s): %d installed, %d removed.\n"
	ApplyInstallCtxFmt = "installing %s version %s for user %q: %w"
	ApplyRemoveCtxFmt  = "removing %s version %s for user %q: %w"
	ApplyResolveCtxFmt = "resolving response file for %s: %w"

	// PlanUse is the plan command name.
	PlanUse   = "plan"
	PlanShort = "Show what apply would change"

	PlanDiffFlag   = "Render the plan as a unified desired/installed diff"
	PlanHeaderFmt  = "Plan for %s (%d package(s), %d installed record(s)):\n"
	PlanLineFmt    = "  %s  %-30s %-14s %s\n"
	PlanDriftedFmt = "drifted: %s installed"
	PlanSummaryFmt = "Plan: %d to install, %d to remove, %d unchanged.\n"
	PlanNoChanges  = "No changes. Installed state matches the declaration."

	// InstalledUse is the installed command name.
	InstalledUse   = "installed"
	InstalledShort = "List packages recorded in the installation registry"

	InstalledUserFlag  = "Read the registry of this operating-system user"
	InstalledJSONFlag  = "Emit the inventory as JSON"
	InstalledHeaderFmt = "%d package(s) in %s\n"
	InstalledLineFmt   = "%-42s %-18s %-9s %s\n"
	InstalledEmpty     = "No packages are recorded in the registry."

	// InstallUse is the install command usage line.
	InstallUse   = "install <package-id>"
	InstallShort = "Install a single package without a state file"

	InstallVersionFlag    = "Package version to install"
	InstallTargetFlag     = "Installation directory"
	InstallUserFlag       = "Operating-system user performing the installation"
	InstallRepositoryFlag = "Repository location (repeatable)"
	InstallResponseFlag   = "Vendor response file describing the installation"
	InstallJDKPackageFlag = "Bundled JDK package identifier"
	InstallJDKVersionFlag = "Bundled JDK package version"
	InstallOptionsFlag    = "Extra options appended verbatim to the imcl invocation"
	InstallOwnerFlag      = "Owner applied recursively to the installed tree"
	InstallGroupFlag      = "Group applied recursively to the installed tree"
	InstallNoChownFlag    = "Skip ownership management of the installed tree"
	InstallAlreadyFmt     = "%s %s is already installed at %s; nothing to do.\n"
	InstallDoneFmt        = "Installed %s %s into %s.\n"

	// UninstallUse is the uninstall command usage line.
	UninstallUse   = "uninstall <package-id>"
	UninstallShort = "Remove a single installed package"

	UninstallNotInstalledFmt = "%s %s is not installed at %s; nothing to do.\n"
	UninstallDoneFmt         = "Removed %s %s from %s.\n"

	// AddUse is the add command usage line.
	AddUse   = "add <package-id>"
	AddShort = "Append a package declaration to the state file"

	AddNameFlag     = "Entry label (defaults to the package identifier)"
	AddEnsureFlag   = "Desired state for the entry (present or absent)"
	AddDoneFmt      = "Added %s to %s.\n"
	AddTOMLOnlyFmt  = "cannot edit %s in place: add only supports TOML state files"
	AddMissingFmt   = "state file %s does not exist; run 'imctl init' first"
	AddDuplicateFmt = "a package named %q is already declared in %s"

	PackageIDRequired = "a package identifier argument is required"
)
