/*
Package aide is a decision-tree help assistant.

A help tree is a static mapping from node id to a node: some text, an optional
reference into a video catalog, and a list of labelled choices pointing at
other nodes. The assistant walks that tree one choice at a time and describes
every step to a RenderSink (a terminal, a JSON stream, a widget bridge...).

# Concept

Loading happens once: the tree and the video catalog are fetched concurrently
by New and are read-only afterwards. A tree that cannot be loaded aborts New;
a catalog that cannot be loaded only disables videos.

The conversation itself is synchronous:

  - Start renders the root node.
  - Choose echoes the label, then moves to the target and renders it. A target
    missing from the tree leaves the conversation where it was.
  - Reset clears the transcript and starts again.

# Usage

	assistant, err := aide.New(ctx,
		aide.WithTreeSource("static/data/chatbot_tree.json"),
		aide.WithVideoEndpoint("https://example.org/utilisateur/aide/api/videos/"),
		aide.WithSink(sink.NewTextSink(os.Stdout)),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := assistant.Start(ctx); err != nil {
		log.Fatal(err)
	}
*/
package aide
