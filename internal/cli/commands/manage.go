package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ghup/internal/errors"
	"ghup/internal/workflow"
)

// menuAction identifies one entry of the interactive menu.
type menuAction int

const (
	actionViewStatus menuAction = iota
	actionViewHistory
	actionStageFiles
	actionCommit
	actionPush
	actionPull
	actionCreateBranch
	actionSwitchBranch
	actionCreateTag
	actionListBranches
	actionFullWorkflow
	actionExit
)

type menuEntry struct {
	key    string
	label  string
	action menuAction
}

// menuEntries is the full menu in display order. The keys are what the
// user types, so they stay stable even if entries are reordered.
var menuEntries = []menuEntry{
	{"1", "View repository status", actionViewStatus},
	{"2", "View commit history", actionViewHistory},
	{"3", "Stage files", actionStageFiles},
	{"4", "Commit staged files", actionCommit},
	{"5", "Push to remote", actionPush},
	{"6", "Pull from remote", actionPull},
	{"7", "Create branch", actionCreateBranch},
	{"8", "Switch branch", actionSwitchBranch},
	{"9", "Create annotated tag", actionCreateTag},
	{"10", "List branches", actionListBranches},
	{"11", "Stage, commit and push", actionFullWorkflow},
	{"0", "Exit", actionExit},
}

// NewManageCommand creates the manage command: an interactive numbered
// menu over the repository operations.
func NewManageCommand(envPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "manage",
		Short: "Manage the repository through an interactive menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := OpenSession(envPath())
			if err != nil {
				return err
			}
			if !session.Git.IsRepository() {
				return errors.NewWithDetails(errors.ErrGitRepoNotFound,
					"not a git repository", session.Config.LocalPath)
			}
			menu := newMenu(session, cmd.InOrStdin(), cmd.OutOrStdout())
			return menu.loop(cmd.Context())
		},
	}
}

// menu drives the interactive session. Reads and writes go through the
// command's streams so the loop is testable.
type menu struct {
	session *Session
	in      *bufio.Reader
	out     io.Writer
}

func newMenu(session *Session, in io.Reader, out io.Writer) *menu {
	return &menu{session: session, in: bufio.NewReader(in), out: out}
}

func (m *menu) loop(ctx context.Context) error {
	for {
		m.render()
		choice, err := prompt(m.in, m.out, "Select an option")
		if err != nil {
			// EOF ends the session like an explicit exit.
			return nil
		}

		entry, ok := resolveEntry(choice)
		if !ok {
			fmt.Fprintf(m.out, "Invalid selection %q, try again.\n", choice)
			continue
		}
		if entry.action == actionExit {
			fmt.Fprintln(m.out, "Bye.")
			return nil
		}

		// A failed operation reports and re-prompts; the session only
		// ends on exit or EOF.
		if err := m.dispatch(ctx, entry.action); err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
		fmt.Fprintln(m.out)
	}
}

func (m *menu) render() {
	fmt.Fprintln(m.out)
	fmt.Fprintf(m.out, "=== %s ===\n", m.session.Config.Repo)
	for _, entry := range menuEntries {
		fmt.Fprintf(m.out, "  %2s) %s\n", entry.key, entry.label)
	}
}

func resolveEntry(choice string) (menuEntry, bool) {
	choice = strings.TrimSpace(choice)
	for _, entry := range menuEntries {
		if entry.key == choice {
			return entry, true
		}
	}
	return menuEntry{}, false
}

func (m *menu) dispatch(ctx context.Context, action menuAction) error {
	switch action {
	case actionViewStatus:
		return m.viewStatus(ctx)
	case actionViewHistory:
		return m.viewHistory()
	case actionStageFiles:
		return m.stageFiles(ctx)
	case actionCommit:
		return m.commit(ctx)
	case actionPush:
		return m.push(ctx)
	case actionPull:
		return m.pull(ctx)
	case actionCreateBranch:
		return m.createBranch(ctx)
	case actionSwitchBranch:
		return m.switchBranch(ctx)
	case actionCreateTag:
		return m.createTag(ctx)
	case actionListBranches:
		return m.listBranches()
	case actionFullWorkflow:
		return m.fullWorkflow(ctx)
	default:
		return errors.New(errors.ErrInvalidInput, "unknown menu action")
	}
}

func (m *menu) viewStatus(ctx context.Context) error {
	branch, err := m.session.Git.CurrentBranch()
	if err != nil {
		return err
	}
	modified, untracked, err := m.session.Git.WorkingTreeChanges()
	if err != nil {
		return err
	}
	ahead, behind, hasUpstream, err := m.session.Git.AheadBehind(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Branch: %s\n", branch)
	if hasUpstream {
		fmt.Fprintf(m.out, "Upstream: %d ahead, %d behind\n", ahead, behind)
	} else {
		fmt.Fprintln(m.out, "Upstream: none")
	}
	if len(modified) == 0 && len(untracked) == 0 {
		fmt.Fprintln(m.out, "Working tree clean")
		return nil
	}
	for _, f := range modified {
		fmt.Fprintf(m.out, "  M %s\n", f)
	}
	for _, f := range untracked {
		fmt.Fprintf(m.out, "  ? %s\n", f)
	}
	return nil
}

func (m *menu) viewHistory() error {
	commits, err := m.session.Git.RecentCommits(10)
	if err != nil {
		return err
	}
	for _, c := range commits {
		fmt.Fprintf(m.out, "  %s  %s  (%s, %s)\n",
			c.Hash, c.Subject, c.Author, c.Date.Format("2006-01-02"))
	}
	return nil
}

func (m *menu) stageFiles(ctx context.Context) error {
	pattern, err := promptDefault(m.in, m.out, "Pattern to stage", ".")
	if err != nil {
		return err
	}
	if err := m.session.Git.StageByPatterns(ctx, []string{pattern}); err != nil {
		return err
	}
	staged, err := m.session.Git.StagedFiles(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Staged %d file(s)\n", len(staged))
	return nil
}

func (m *menu) commit(ctx context.Context) error {
	staged, err := m.session.Git.StagedFiles(ctx)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		fmt.Fprintln(m.out, "Nothing staged; stage files first.")
		return nil
	}
	message, err := promptDefault(m.in, m.out, "Commit message", m.session.Config.CommitMessage)
	if err != nil {
		return err
	}
	hash, err := m.session.Git.Commit(ctx, message)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Committed %s\n", hash)
	return nil
}

func (m *menu) push(ctx context.Context) error {
	branch, err := m.session.Git.CurrentBranch()
	if err != nil {
		return err
	}
	if err := m.session.Git.Push(ctx, m.pushTarget(), branch); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Pushed %s\n", branch)
	return nil
}

func (m *menu) pull(ctx context.Context) error {
	branch, err := m.session.Git.CurrentBranch()
	if err != nil {
		return err
	}
	if err := m.session.Git.Pull(ctx, m.session.Project.Push.Remote, branch); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Pulled %s\n", branch)
	return nil
}

func (m *menu) createBranch(ctx context.Context) error {
	name, err := prompt(m.in, m.out, "New branch name")
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "branch name must not be empty")
	}
	if err := m.session.Git.CreateBranch(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Created branch %s\n", name)
	if confirm(m.in, m.out, "Switch to it?") {
		if err := m.session.Git.SwitchBranch(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Switched to %s\n", name)
	}
	return nil
}

func (m *menu) switchBranch(ctx context.Context) error {
	if err := m.listBranches(); err != nil {
		return err
	}
	name, err := prompt(m.in, m.out, "Branch to switch to")
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "branch name must not be empty")
	}
	if err := m.session.Git.SwitchBranch(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Switched to %s\n", name)
	return nil
}

func (m *menu) createTag(ctx context.Context) error {
	name, err := prompt(m.in, m.out, "Tag name")
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "tag name must not be empty")
	}
	message := m.session.Project.Tag.MessagePrefix + name
	if err := m.session.Git.CreateAnnotatedTag(ctx, name, message); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Created tag %s\n", name)
	if confirm(m.in, m.out, "Push it?") {
		refspec := fmt.Sprintf("refs/tags/%s", name)
		if err := m.session.Git.Push(ctx, m.pushTarget(), refspec); err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Pushed tag %s\n", name)
	}
	return nil
}

func (m *menu) listBranches() error {
	branches, err := m.session.Git.Branches()
	if err != nil {
		return err
	}
	for _, b := range branches {
		marker := " "
		if b.Current {
			marker = "*"
		}
		fmt.Fprintf(m.out, "  %s %s\n", marker, b.Name)
	}
	return nil
}

func (m *menu) fullWorkflow(ctx context.Context) error {
	message, err := promptDefault(m.in, m.out, "Commit message", m.session.Config.CommitMessage)
	if err != nil {
		return err
	}
	pusher := workflow.NewPusher(m.session.Config, m.session.Project, m.session.Git)
	summary, err := pusher.Run(ctx, workflow.PushOptions{Message: message})
	if err != nil {
		return err
	}
	if summary.CleanTree {
		fmt.Fprintln(m.out, "Working tree clean, nothing to push")
		return nil
	}
	fmt.Fprintf(m.out, "Committed %s and pushed %s\n", summary.CommitHash, summary.Branch)
	return nil
}

func (m *menu) pushTarget() string {
	return m.session.Git.PushTarget(m.session.Project.Push.Remote,
		m.session.Config.Username, m.session.Config.Token)
}
