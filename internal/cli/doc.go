// Package cli implements the command-line interface for the volley
// schedule service.
//
// The cli package provides the Cobra-based CLI with a serve command
// running the HTTP API, a fetch command performing one refresh cycle
// and printing the snapshot (text/JSON), and a remind command forcing
// a weekly reminder dispatch. It wires together the extractor, parser,
// coordinator, subscription store and push sender from the environment
// configuration.
package cli
