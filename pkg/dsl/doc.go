/*
Package dsl provides a fluent builder for constructing help trees in Go code.

It is an alternative to JSON or YAML tree files, useful for embedding a small
assistant in a program and for tests.

Example usage:

	b := dsl.New()

	b.Add("start").
		Text("Hi! What do you need help with?").
		Option("Signing in", "login").
		Option("Nothing, thanks", "bye")

	b.Add("login").
		Video("This video shows how to sign in.", 0).
		Option("Thanks", "bye")

	b.Add("bye").Text("Glad to help.").Terminal()

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	assistant, err := aide.New(ctx, aide.WithTreeLoader(loader))
*/
package dsl
