package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/brewtap/pkg/domain/interfaces"
	"github.com/m-mizutani/brewtap/pkg/domain/model"
)

// cloneDepth bounds history fetched from the tap repository
const cloneDepth = 5

type publishUseCase struct {
	runner  interfaces.CommandRunner
	timeout time.Duration
}

// NewPublish creates a PublishUseCase that drives the git CLI
func NewPublish(runner interfaces.CommandRunner, timeout time.Duration) interfaces.PublishUseCase {
	return &publishUseCase{
		runner:  runner,
		timeout: timeout,
	}
}

// CommitMessage returns the commit message used for a formula update
func CommitMessage(repo, version string) string {
	return fmt.Sprintf("Brew formula update for %s version %s", repo, version)
}

// TapURL returns the token-authenticated HTTPS URL of a tap repository
func TapURL(token, owner, tap string) string {
	return fmt.Sprintf("https://%s@github.com/%s/%s.git", token, owner, tap)
}

type publishStep struct {
	name string
	cmd  model.Command
}

// Publish runs the git sequence against the tap. Each step is a separate
// command; the first failure aborts the rest and nothing is rolled back.
// An unchanged formula makes `git commit` fail, which is reported as-is.
func (uc *publishUseCase) Publish(ctx context.Context, input *model.PublishInput) error {
	logger := ctxlog.From(ctx)

	for _, step := range uc.steps(input) {
		logger.Info("Running publish step", "step", step.name, "command", step.cmd.String())

		if _, err := uc.runner.Run(ctx, step.cmd); err != nil {
			return goerr.Wrap(err, "publish step failed",
				goerr.V("step", step.name),
				goerr.V("tap", input.Tap),
			)
		}
	}

	logger.Info("Published formula",
		"repo", input.Repo,
		"version", input.Version,
		"tap", input.Tap,
	)
	return nil
}

func (uc *publishUseCase) steps(input *model.PublishInput) []publishStep {
	tapDir := filepath.Join(input.WorkDir, input.Tap)
	formulaRel := filepath.Join(input.FormulaFolder, FormulaFileName(input.Repo))
	secrets := []string{input.Token}

	git := func(args ...string) model.Command {
		return model.Command{
			Name:    "git",
			Args:    args,
			Timeout: uc.timeout,
			Secrets: secrets,
		}
	}

	return []publishStep{
		{name: "config_name", cmd: git("config", "--global", "user.name", input.Owner)},
		{name: "config_email", cmd: git("config", "--global", "user.email", input.OwnerEmail)},
		{name: "clone", cmd: git("clone", fmt.Sprintf("--depth=%d", cloneDepth), input.TapURL, tapDir)},
		{name: "move", cmd: model.Command{
			Name:    "mv",
			Args:    []string{input.FormulaPath, filepath.Join(tapDir, formulaRel)},
			Timeout: uc.timeout,
			Secrets: secrets,
		}},
		{name: "add", cmd: git("-C", tapDir, "add", formulaRel)},
		{name: "commit", cmd: git("-C", tapDir, "commit", "-m", CommitMessage(input.Repo, input.Version))},
		{name: "push", cmd: git("-C", tapDir, "push", input.TapURL)},
	}
}
