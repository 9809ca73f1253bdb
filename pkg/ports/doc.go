/*
Package ports defines the interfaces between the aide engine and its collaborators.

# Key Interfaces

  - RenderSink: consumes render, echo and clear events (terminal, JSON, MCP, tests).
  - TreeLoader: obtains the decision tree (file, HTTP, loam directory, memory).
  - VideoSource: fetches the video catalog from the network.
  - CatalogCache: optional read-through cache in front of VideoSource.
*/
package ports
