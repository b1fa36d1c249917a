package messages

// Wizard and init messages.
const (
	// InitUse is the init command name.
	InitUse   = "init"
	InitShort = "Create a desired-state file"
	InitLong  = "Create a desired-state file, interactively when a terminal is attached.\n\nWith --package, --version, and --target the file is scaffolded directly from\nthe flags. Without them the wizard walks through the same questions."

	InitForceFlag      = "Overwrite an existing state file"
	InitOutputFlag     = "Where to write the state file"
	InitPackageFlag    = "Package identifier for the scaffolded entry"
	InitVersionFlag    = "Package version for the scaffolded entry"
	InitTargetFlag     = "Installation directory for the scaffolded entry"
	InitRepositoryFlag = "Repository imcl installs from"
	InitUserFlag       = "Operating-system user the installation runs as"

	InitExistsFmt      = "state file %s already exists; re-run with --force to overwrite"
	InitNonInteractive = "init needs an interactive terminal for the wizard; pass --package/--version/--target (or --force with defaults) to scaffold without prompts"
	InitWroteFmt       = "Wrote %s. Review it, then run 'imctl plan'.\n"
	InitCancelled      = "init cancelled; nothing written"

	WizardTitlePackage    = "Package identifier"
	WizardDescPackage     = "The offering id Installation Manager tracks, e.g. com.ibm.websphere.ND.v85"
	WizardTitleVersion    = "Package version"
	WizardDescVersion     = "The exact version string, e.g. 8.5.5000.20130514_1044"
	WizardTitleTarget     = "Installation directory"
	WizardDescTarget      = "Where the product is (or will be) installed"
	WizardTitleRepository = "Repository location"
	WizardDescRepository  = "Directory or URL imcl installs from; leave empty when using a response file"
	WizardTitleUser       = "Operating-system user"
	WizardDescUser        = "The account the installation runs as and whose registry is consulted"
	WizardTitleConfirm    = "Write the state file?"
	WizardExitPrompt      = "Exit without writing a state file?"

	WizardRequiresTerminal = "wizard requires an interactive terminal"

	WizardPackageRequired = "package identifier is required"
	WizardVersionRequired = "version is required"
	WizardTargetAbsolute  = "target must be an absolute path"

	WizardStatePreambleFmt = "# imctl desired state\n# Generated by imctl init on %s.\n"

	InitSampleBody = "#\n# [[package]]\n# package = \"com.ibm.websphere.liberty.v85\"\n# version = \"8.5.5016.20190801_0951\"\n# target = \"/opt/IBM/Liberty\"\n# user = \"wasadm\"\n# repositories = [\"/mnt/repo/liberty\"]\n"
)
