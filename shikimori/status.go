// Package shikimori is a client for the Shikimori manga tracker.
package shikimori

import (
	"github.com/samber/lo"
	"github.com/shikisync/shikisync/track"
)

var remoteStatuses = map[track.Status]string{
	track.Reading:    "watching",
	track.Completed:  "completed",
	track.OnHold:     "on_hold",
	track.Dropped:    "dropped",
	track.PlanToRead: "planned",
	track.Rereading:  "rewatching",
}

var localStatuses = lo.Invert(remoteStatuses)

// ToRemoteStatus returns the user_rates status token for a local status.
func ToRemoteStatus(s track.Status) (string, error) {
	if remote, ok := remoteStatuses[s]; ok {
		return remote, nil
	}
	return "", &UnrecognizedStatusError{Status: s.String()}
}

// ToLocalStatus maps a user_rates status token back to the local enum.
func ToLocalStatus(remote string) (track.Status, error) {
	if s, ok := localStatuses[remote]; ok {
		return s, nil
	}
	return 0, &UnrecognizedStatusError{Status: remote}
}
