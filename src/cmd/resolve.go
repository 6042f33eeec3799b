package cmd

import (
	"fmt"

	"github.com/rtvm/rtvm/src/internal/alias"
	"github.com/rtvm/rtvm/src/internal/catalog"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
)

// Catalog selectors accepted wherever a version is expected
const (
	selectorLatest = "latest"
	selectorLTS    = "lts"
)

// resolveVersion turns whatever the user typed into a concrete version
// string. Resolution order: a literally installed version wins, then a
// defined alias, then the catalog selectors. Anything else is returned
// unchanged for the caller to install or reject.
func resolveVersion(st *store.Store, profile runtime.Profile, requested string) (string, error) {
	name := profile.Name()

	if st.IsInstalled(name, requested) {
		return requested, nil
	}

	version, defined, err := alias.NewRegistry(st).Resolve(name, requested)
	if err != nil {
		return "", err
	}
	if defined {
		return version, nil
	}

	switch requested {
	case selectorLatest:
		releases, err := catalog.Releases(profile)
		if err != nil {
			return "", err
		}
		r, ok := runtime.LatestStable(releases)
		if !ok {
			return "", fmt.Errorf("no stable %s release in the catalog", profile.DisplayName())
		}
		return r.Version, nil

	case selectorLTS:
		if !profile.HasLTS() {
			return "", fmt.Errorf("%s has no long-term-support releases", profile.DisplayName())
		}
		releases, err := catalog.Releases(profile)
		if err != nil {
			return "", err
		}
		r, ok := runtime.LatestLTS(releases)
		if !ok {
			return "", fmt.Errorf("no LTS %s release in the catalog", profile.DisplayName())
		}
		return r.Version, nil
	}

	return requested, nil
}
