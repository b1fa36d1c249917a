package imcl

import (
	"strings"

	"github.com/conn-castle/imctl/internal/state"
	"github.com/conn-castle/imctl/internal/userctx"
)

// InstallArgs assembles the install invocation for spec. With a response
// file the whole installation is described there and only license
// acceptance and extra options ride along; otherwise the invocation is
// built from the discrete spec fields. Unprivileged users get the
// non-administrative access-rights flag. Extra options always come last,
// verbatim.
func InstallArgs(spec state.PackageSpec, u userctx.User) []string {
	if spec.Response != "" {
		args := []string{"input", spec.Response, "-acceptLicense"}
		return append(args, extraOptions(spec.Options)...)
	}

	args := []string{"install", spec.Package + "_" + spec.Version}
	if spec.JDKPackage != "" {
		args = append(args, spec.JDKPackage+"_"+spec.JDKVersion)
	}
	args = append(args, "-repositories", strings.Join(spec.Repositories, ","))
	args = append(args, "-installationDirectory", spec.Target)
	if !u.Privileged() {
		args = append(args, "-accessRights", "nonAdmin")
	}
	args = append(args, "-acceptLicense")
	return append(args, extraOptions(spec.Options)...)
}

// UninstallArgs assembles the silent uninstall invocation for spec.
func UninstallArgs(spec state.PackageSpec) []string {
	return []string{"uninstall", spec.Package + "_" + spec.Version, "-s", "-installationDirectory", spec.Target}
}

func extraOptions(options string) []string {
	return strings.Fields(options)
}
