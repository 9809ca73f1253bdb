package testutils

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	tmpDir := t.TempDir()

	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// HelpTree returns a small help tree exercising text, video and terminal nodes.
//
//	start --"Account"--> account --"Show me"--> video_login (index 2) --"Thanks"--> end
//	start --"Bye"------> end
func HelpTree() *domain.Tree {
	return domain.NewTree(
		domain.NewTextNode("start", "Hi! What do you need help with?",
			domain.Choice{Label: "Account", Next: "account"},
			domain.Choice{Label: "Bye", Next: "end"},
		),
		domain.NewTextNode("account", "Accounts are managed from the portal.",
			domain.Choice{Label: "Show me", Next: "video_login"},
		),
		domain.NewVideoNode("video_login", "This video shows how to sign in.", 2,
			domain.Choice{Label: "Thanks", Next: "end"},
		),
		domain.NewTextNode("end", "Glad to help."),
	)
}

// HelpCatalog returns a catalog long enough for HelpTree's video node.
func HelpCatalog() domain.Catalog {
	return domain.Catalog{
		{ID: "intro01", Title: "Introduction"},
		{ID: "menu02", Title: "Menus"},
		{ID: "login03", Title: "Signing in"},
	}
}
