// Package cli implements the relayctl command line.
//
// Every command shares one setup step (see rootCmd.PersistentPreRunE): the
// layered CLI configuration and the contexts file are resolved into a
// client.Client, a logger and a per-context state directory. List commands
// go through the stores in pkg/store so their search parameters persist
// between invocations.
package cli
