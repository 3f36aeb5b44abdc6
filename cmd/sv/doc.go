// Command sv is the SetupVault CLI: it scans the machine for ad-hoc
// changes, queues the new ones for review, and maintains the durable,
// rationale-backed record library.
package main
