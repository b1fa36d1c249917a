package reconcile

import goversion "github.com/hashicorp/go-version"

// Compare orders two vendor version strings when both parse as dotted
// versions. ok is false when either does not parse, which is common:
// Installation Manager build suffixes like 8.5.5016.20190821_0703 are
// not versions in any standard sense.
func Compare(installed, want string) (cmp int, ok bool) {
	iv, err := goversion.NewVersion(installed)
	if err != nil {
		return 0, false
	}
	wv, err := goversion.NewVersion(want)
	if err != nil {
		return 0, false
	}
	return iv.Compare(wv), true
}

// describeDrift renders an installed version relative to the wanted one
// for plan output.
func describeDrift(installed, want string) string {
	if cmp, ok := Compare(installed, want); ok {
		switch {
		case cmp < 0:
			return installed + " (older)"
		case cmp > 0:
			return installed + " (newer)"
		}
	}
	return installed
}
