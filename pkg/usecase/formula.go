package usecase

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/brewtap/pkg/domain/model"
	"github.com/m-mizutani/brewtap/pkg/domain/types"
)

//go:embed templates/formula.rb.tmpl
var formulaTemplateText string

var formulaTemplate = template.Must(template.New("formula").Parse(formulaTemplateText))

const (
	// maxDescLineLength is the `brew audit --strict` limit for the desc field
	maxDescLineLength = 80

	// descPadding offsets the repo name for the audit tool's own formatting
	descPadding = 2

	formulaExt = ".rb"
)

type formulaVars struct {
	ClassName   string
	Description string
	Owner       string
	RepoName    string
	TarURL      string
	Checksum    string
	License     string
	Install     string
	Test        string
}

// RenderFormula renders a Homebrew formula from rc. It is a pure function:
// identical input always yields byte-identical output.
//
// Description, install and test text are interpolated without escaping; the
// caller is responsible for passing text that is valid inside the formula.
func RenderFormula(rc *model.ReleaseContext) (*model.Formula, error) {
	install := strings.TrimSpace(rc.InstallScript)
	if install == "" {
		return nil, goerr.New("install script is required",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("repo", rc.RepoName),
		)
	}

	limit, err := DescriptionLimit(rc.RepoName)
	if err != nil {
		return nil, err
	}

	vars := formulaVars{
		ClassName:   ClassName(rc.RepoName),
		Description: TruncateDescription(rc.Description, limit),
		Owner:       rc.Owner,
		RepoName:    rc.RepoName,
		TarURL:      rc.TarURL,
		Checksum:    rc.Checksum,
		License:     rc.License,
		Install:     install,
		Test:        strings.TrimSpace(rc.TestScript),
	}

	var buf bytes.Buffer
	if err := formulaTemplate.Execute(&buf, vars); err != nil {
		return nil, goerr.Wrap(err, "failed to execute formula template")
	}

	return &model.Formula{
		ClassName: vars.ClassName,
		FileName:  FormulaFileName(rc.RepoName),
		Text:      buf.String(),
	}, nil
}

// FormulaFileName returns the file name of the formula inside the tap
func FormulaFileName(repoName string) string {
	return repoName + formulaExt
}

// ClassName derives the Ruby class name from a repository name. Each letter
// that follows a non-letter is upper-cased and every other letter lower-cased,
// then all of "-", "_", "." and " " are removed: "my-cool_tool" -> "MyCoolTool".
func ClassName(repoName string) string {
	var b strings.Builder
	prevLetter := false

	for _, r := range repoName {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}

		switch r {
		case '-', '_', '.', ' ':
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// DescriptionLimit returns how many characters of description fit next to
// repoName within the audit line limit. Repository names too long to leave
// any room are rejected.
func DescriptionLimit(repoName string) (int, error) {
	limit := maxDescLineLength - (utf8.RuneCountInString(repoName) + descPadding)
	if limit < 0 {
		return 0, goerr.New("repository name too long for an auditable formula description",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("repo", repoName),
			goerr.V("max_repo_name_length", maxDescLineLength-descPadding),
		)
	}
	return limit, nil
}

// TruncateDescription cuts desc to at most limit characters, then strips
// surrounding whitespace.
func TruncateDescription(desc string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if utf8.RuneCountInString(desc) > limit {
		desc = string([]rune(desc)[:limit])
	}
	return strings.TrimSpace(desc)
}

// UnsafeDescription reports whether desc contains characters that would break
// out of the double-quoted desc string when interpolated verbatim.
func UnsafeDescription(desc string) bool {
	return strings.ContainsAny(desc, "\"\\\n\r") || strings.Contains(desc, "#{")
}
