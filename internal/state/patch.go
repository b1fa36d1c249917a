package state

import (
	"fmt"
	"strconv"
	"strings"

	// toml is used for syntax validation only; the edit itself is
	// line-based so hand-written comments and formatting survive.
	toml "github.com/pelletier/go-toml"

	"github.com/conn-castle/imctl/internal/messages"
)

// AppendPackage renders spec as a [[package]] block and appends it to
// content, preserving the existing text byte for byte. content may be
// empty when the state file does not exist yet. source is the file path
// used in error messages. The input and the result are both syntax
// checked.
func AppendPackage(content string, spec PackageSpec, source string) (string, error) {
	if strings.TrimSpace(content) != "" {
		if _, err := toml.LoadBytes([]byte(content)); err != nil {
			return "", fmt.Errorf(messages.StateDecodeFmt, source, err)
		}
	}

	block := renderPackageBlock(spec)
	var out string
	switch {
	case strings.TrimSpace(content) == "":
		out = block
	case strings.HasSuffix(content, "\n\n"):
		out = content + block
	case strings.HasSuffix(content, "\n"):
		out = content + "\n" + block
	default:
		out = content + "\n\n" + block
	}

	if _, err := toml.LoadBytes([]byte(out)); err != nil {
		return "", fmt.Errorf(messages.StateDecodeFmt, source, err)
	}
	return out, nil
}

// renderPackageBlock emits the spec in declaration-key order, skipping
// unset fields.
func renderPackageBlock(spec PackageSpec) string {
	var b strings.Builder
	b.WriteString("[[package]]\n")
	writeKey := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s = %s\n", key, strconv.Quote(value))
		}
	}
	writeKey("name", spec.Name)
	writeKey("ensure", spec.Ensure)
	writeKey("package", spec.Package)
	writeKey("version", spec.Version)
	writeKey("target", spec.Target)
	writeKey("user", spec.User)
	writeKey("response", spec.Response)
	if len(spec.Repositories) > 0 {
		quoted := make([]string, len(spec.Repositories))
		for i, r := range spec.Repositories {
			quoted[i] = strconv.Quote(r)
		}
		fmt.Fprintf(&b, "repositories = [%s]\n", strings.Join(quoted, ", "))
	}
	writeKey("jdk_package", spec.JDKPackage)
	writeKey("jdk_version", spec.JDKVersion)
	writeKey("options", spec.Options)
	writeKey("owner", spec.Owner)
	writeKey("group", spec.Group)
	if spec.ManageOwnership != nil {
		fmt.Fprintf(&b, "manage_ownership = %t\n", *spec.ManageOwnership)
	}
	return b.String()
}
