/*
Package sink provides RenderSink implementations.

  - Recorder keeps an in-memory transcript (tests, MCP responses).
  - TextSink writes a human readable transcript to a terminal or any io.Writer.
  - JSONSink writes one JSON object per event (JSON-Lines) for programmatic hosts.
  - Multi fans events out to several sinks.
*/
package sink
