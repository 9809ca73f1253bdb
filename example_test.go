package aide_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/aide"
	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/sink"
)

// ExampleNew demonstrates a conversation over an in-memory tree, printed as JSON lines.
func ExampleNew() {
	tree := domain.NewTree(
		domain.NewTextNode("start", "Hi", domain.Choice{Label: "Go", Next: "b"}),
		domain.NewTextNode("b", "Bye"),
	)

	ctx := context.Background()
	assistant, err := aide.New(ctx,
		aide.WithTree(tree),
		aide.WithVideos(domain.Catalog{}),
		aide.WithSink(sink.NewJSONSink(os.Stdout)),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := assistant.Start(ctx); err != nil {
		log.Fatal(err)
	}
	if err := assistant.Choose(ctx, "Go", "b"); err != nil {
		log.Fatal(err)
	}
	fmt.Println(assistant.Current().CurrentNodeID)

	// Output:
	// {"type":"render","event":{"node_id":"start","content":"Hi","choices":[{"label":"Go","next":"b"}]}}
	// {"type":"echo","label":"Go"}
	// {"type":"render","event":{"node_id":"b","content":"Bye","choices":[]}}
	// b
}
