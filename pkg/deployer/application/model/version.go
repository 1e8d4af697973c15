package model

type VersionID = string

type Version struct {
	ID       VersionID
	Position int
	Aliases  []string
}

// IsLive reports whether the version is serving production traffic.
func (v Version) IsLive() bool {
	return hasLiveAlias(v.Aliases)
}

// VersionSet is ordered oldest first, exactly as the remote API reports it.
type VersionSet []Version

func NewVersionSet(ids ...VersionID) VersionSet {
	versions := make(VersionSet, 0, len(ids))
	for i, id := range ids {
		versions = append(versions, Version{ID: id, Position: i})
	}
	return versions
}

func (set VersionSet) Oldest() (Version, bool) {
	if len(set) == 0 {
		return Version{}, false
	}
	return set[0], true
}

func (set VersionSet) Latest() (Version, bool) {
	if len(set) == 0 {
		return Version{}, false
	}
	return set[len(set)-1], true
}

func (set VersionSet) IDs() []VersionID {
	ids := make([]VersionID, 0, len(set))
	for _, version := range set {
		ids = append(ids, version.ID)
	}
	return ids
}

const LiveAlias = "live"

// Deployment is a running service instance of a bundle.
type Deployment struct {
	Version    VersionID
	BundleName BundleName
	Aliases    []string
}

func (d Deployment) IsLive() bool {
	return hasLiveAlias(d.Aliases)
}

func hasLiveAlias(aliases []string) bool {
	for _, alias := range aliases {
		if alias == LiveAlias {
			return true
		}
	}
	return false
}
