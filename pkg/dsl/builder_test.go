package dsl_test

import (
	"context"
	"testing"

	"github.com/aretw0/aide"
	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/dsl"
	"github.com/aretw0/aide/pkg/sink"
)

func helpTree() *dsl.Builder {
	b := dsl.New()

	b.Add("start").
		Text("Hi! What do you need help with?").
		Option("Signing in", "login").
		Option("Nothing, thanks", "bye").
		Add("login").
		Video("This video shows how to sign in.", 0).
		Option("Thanks", "bye").
		Add("bye").
		Text("Glad to help.").
		Terminal()

	return b
}

func TestBuilder_SimpleTree(t *testing.T) {
	// 1. Build the tree using the DSL
	loader, err := helpTree().Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	// 2. Load it back
	tree, err := loader.LoadTree(context.Background())
	if err != nil {
		t.Fatalf("LoadTree() failed: %v", err)
	}
	if tree.Len() != 3 {
		t.Fatalf("Expected 3 nodes, got %d", tree.Len())
	}

	// 3. Verify specific nodes
	start, ok := tree.Get("start")
	if !ok {
		t.Fatal("start node missing")
	}
	if start.Kind != domain.KindText {
		t.Errorf("Expected start node kind 'text', got '%s'", start.Kind)
	}
	if len(start.Options) != 2 || start.Options[0].Next != "login" {
		t.Errorf("Unexpected start options: %+v", start.Options)
	}

	login, _ := tree.Get("login")
	if idx, ok := login.VideoRef(); !ok || idx != 0 {
		t.Errorf("Expected login to reference video 0, got %d (%v)", idx, ok)
	}

	bye, _ := tree.Get("bye")
	if !bye.Terminal() {
		t.Error("Expected bye to be terminal")
	}
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := dsl.New()
	b.Add("start").Text("first")
	b.Add("start").Option("Go", "end")

	nodes := b.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(nodes))
	}
	if nodes[0].Content != "first" || len(nodes[0].Options) != 1 {
		t.Errorf("Expected merged node, got %+v", nodes[0])
	}
}

func TestBuilder_EmptyID(t *testing.T) {
	b := dsl.New()
	b.Add("").Text("nameless")

	if _, err := b.Build(); err == nil {
		t.Error("Expected error for node without ID")
	}
}

func TestBuilder_DrivesAssistant(t *testing.T) {
	loader, err := helpTree().Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	rec := sink.NewRecorder()
	a, err := aide.New(context.Background(),
		aide.WithTreeLoader(loader),
		aide.WithVideos(domain.Catalog{{ID: "login01", Title: "Signing in"}}),
		aide.WithSink(rec),
	)
	if err != nil {
		t.Fatalf("aide.New() failed: %v", err)
	}

	ctx := context.Background()
	if err := a.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := a.Choose(ctx, "Signing in", "login"); err != nil {
		t.Fatal(err)
	}

	last, ok := rec.LastRender()
	if !ok || last.Media == nil || last.Media.ID != "login01" {
		t.Errorf("Expected login video, got %+v", last)
	}
}
