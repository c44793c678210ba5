package ui

import (
	"fmt"
	"strings"
	"time"

	"ghup/internal/status"
)

// RenderReport formats a status report as the human-readable multi-section
// text the monitor prints. The machine exports live in the status package.
func RenderReport(r *status.Report) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Repository Status") + "\n\n")

	b.WriteString(HeaderStyle.Render("Repository") + "\n")
	fmt.Fprintf(&b, "  Path:      %s\n", r.Path)
	if r.RemoteURL != "" {
		fmt.Fprintf(&b, "  Remote:    %s\n", r.RemoteURL)
	}
	fmt.Fprintf(&b, "  Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))

	b.WriteString("\n" + HeaderStyle.Render("Branch") + "\n")
	fmt.Fprintf(&b, "  Current:       %s\n", r.Branch)
	if r.HasUpstream {
		fmt.Fprintf(&b, "  Ahead/Behind:  %d/%d\n", r.Ahead, r.Behind)
	} else {
		fmt.Fprintf(&b, "  Ahead/Behind:  no upstream\n")
	}
	fmt.Fprintf(&b, "  Total commits: %d\n", r.TotalCommits)
	if r.Dirty {
		fmt.Fprintf(&b, "  State:         %s\n", WarningStyle.Render("dirty (has changes)"))
	} else {
		fmt.Fprintf(&b, "  State:         %s\n", SuccessStyle.Render("clean"))
	}

	b.WriteString("\n" + HeaderStyle.Render("Last Commit") + "\n")
	fmt.Fprintf(&b, "  %s %s\n", r.LastCommit.Hash, r.LastCommit.Subject)
	fmt.Fprintf(&b, "  %s\n", DimStyle.Render(fmt.Sprintf("%s (%s)",
		r.LastCommit.Author, r.LastCommit.Date.Format("2006-01-02"))))

	if len(r.Branches) > 0 {
		b.WriteString("\n" + HeaderStyle.Render("Branches") + "\n")
		for _, branch := range r.Branches {
			marker := "  "
			if branch.Current {
				marker = "* "
			}
			fmt.Fprintf(&b, "  %s%s (%s)\n", marker, branch.Name, branch.Hash)
		}
	}

	if len(r.Commits) > 0 {
		b.WriteString("\n" + HeaderStyle.Render("Recent Commits") + "\n")
		tbl := NewTable("Hash", "Subject", "Author", "Date").WithWriter(&b)
		for _, commit := range r.Commits {
			tbl.AddRow(commit.Hash, commit.Subject, commit.Author,
				commit.Date.Format("2006-01-02"))
		}
		tbl.Print()
	}

	if len(r.Modified) > 0 || len(r.Untracked) > 0 {
		b.WriteString("\n" + HeaderStyle.Render("Changed Files") + "\n")
		for _, path := range r.Modified {
			fmt.Fprintf(&b, "  M %s\n", path)
		}
		for _, path := range r.Untracked {
			fmt.Fprintf(&b, "  ? %s\n", path)
		}
	}

	if r.Remote != nil {
		b.WriteString("\n" + HeaderStyle.Render("GitHub") + "\n")
		fmt.Fprintf(&b, "  Repository:     %s\n", r.Remote.FullName)
		if r.Remote.Description != "" {
			fmt.Fprintf(&b, "  Description:    %s\n", r.Remote.Description)
		}
		fmt.Fprintf(&b, "  Default branch: %s\n", r.Remote.DefaultBranch)
		fmt.Fprintf(&b, "  Visibility:     %s\n", visibility(r.Remote.Private))
		fmt.Fprintf(&b, "  Stars/Forks:    %d/%d\n", r.Remote.Stargazers, r.Remote.Forks)
		fmt.Fprintf(&b, "  Open issues:    %d\n", r.Remote.OpenIssues)
	}

	return b.String()
}

func visibility(private bool) string {
	if private {
		return "private"
	}
	return "public"
}
