/*
Package domain contains the core models of the aide assistant.

It defines the decision tree (Nodes and Choices), the video catalog, the
conversation State and the RenderEvent handed to sinks. The package is free of
I/O so it can be shared by the engine, the loaders and every adapter.

# Key Entities

  - Node: a point of the tree, tagged text or video, with its outgoing Choices.
  - Tree: the immutable id-keyed node graph.
  - Catalog: the ordered list of Video descriptors referenced by position.
  - State: the single current position of the conversation.
  - RenderEvent: the content, optional media and choices to display.
*/
package domain
