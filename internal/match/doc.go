// Package match provides the schedule entry model for volleyball league matches.
//
// The match package handles date parsing (dd/MM/yyyy with two-digit years taken
// as the 2000s), team and venue normalization, temporal status derivation
// (Completed, UpcomingThisWeek, Scheduled, Postponed) and the status-priority
// ordering used for cached snapshots. Cells the source left empty are carried
// as the NA sentinel through every function.
package match
