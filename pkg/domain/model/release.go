package model

// Repository represents the upstream repository metadata a formula is built from
type Repository struct {
	Owner       string // Repository owner
	Name        string // Repository name
	Description string // Free-form description, may be empty
	License     string // SPDX identifier, e.g. "MIT"
}

// Release represents the latest published release of a repository
type Release struct {
	Name    string // Release name, used verbatim as the version
	TagName string // Git tag of the release
}

// Version returns the version string used for the archive URL and commit message.
// The release name is used as-is; the tag name is a fallback for unnamed releases.
func (r *Release) Version() string {
	if r.Name != "" {
		return r.Name
	}
	return r.TagName
}

// Archive represents a source archive downloaded to the local filesystem
type Archive struct {
	URL  string // Where the archive was fetched from
	Path string // Local path of the written archive
	Size int64  // Bytes written
}

// ReleaseContext holds everything the formula renderer needs. It is built once
// per run from fetched data and is not modified afterwards.
type ReleaseContext struct {
	Owner         string
	RepoName      string
	Version       string
	Description   string
	License       string
	TarURL        string
	Checksum      string
	InstallScript string
	TestScript    string // Optional; empty means no test block
}

// PublishInput holds what the tap publisher needs for one push
type PublishInput struct {
	Owner         string // Commit author name and tap owner
	OwnerEmail    string // Commit author email
	Repo          string // Repository the formula is for
	Version       string // Released version, used in the commit message
	Tap           string // Tap repository name, e.g. "homebrew-formulas"
	TapURL        string // Token-authenticated clone/push URL
	Token         string // Redacted from every command line
	FormulaFolder string // Folder inside the tap holding formulas
	FormulaPath   string // Local path of the rendered formula
	WorkDir       string // Directory the tap is cloned into
}

// ReleaseInput holds the resolved configuration for one release run
type ReleaseInput struct {
	Owner          string
	OwnerEmail     string
	Repo           string
	Tap            string
	FormulaFolder  string
	Token          string
	InstallScript  string
	TestScript     string
	WorkDir        string // Where the archive and rendered formula are written
	ArchiveBaseURL string // Base of the archive URL, "https://github.com" unless overridden
	DryRun         bool   // Render and write the formula, never publish
}

// ReleaseResult describes the outcome of a release run
type ReleaseResult struct {
	Version     string
	Formula     *Formula
	FormulaPath string
	Published   bool
}
