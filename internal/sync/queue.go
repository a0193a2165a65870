// Package sync keeps tracking operations that could not reach Shikimori and replays them later.
package sync

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/shikisync/shikisync/filesystem"
	"github.com/shikisync/shikisync/log"
	"github.com/shikisync/shikisync/track"
	"github.com/shikisync/shikisync/where"
	"github.com/sirupsen/logrus"
)

// Action is the kind of a queued operation.
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Mutation is one deferred operation. Record is the state to push when the queue is flushed.
type Mutation struct {
	Timestamp int64        `json:"timestamp"`
	Action    Action       `json:"action"`
	UserID    int          `json:"user_id,omitempty"`
	Record    track.Record `json:"record"`
}

// Tracker is the part of the Shikimori client the queue replays against.
type Tracker interface {
	AddOrUpdate(ctx context.Context, record *track.Record, userID int) (*track.Record, error)
	Delete(ctx context.Context, record *track.Record) error
}

// Enqueue appends a mutation to the queue file.
func Enqueue(action Action, record *track.Record, userID int) error {
	f, err := filesystem.API().OpenFile(where.Queue(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	mutation := Mutation{
		Timestamp: time.Now().Unix(),
		Action:    action,
		UserID:    userID,
		Record:    *record,
	}

	log.WithFields(logrus.Fields{"action": action, "remote_id": record.RemoteID}).Info("sync: queued")
	return json.NewEncoder(f).Encode(mutation)
}

// Pending returns the queued mutations in the order they were added. Malformed lines are skipped.
func Pending() ([]Mutation, error) {
	content, err := filesystem.API().ReadFile(where.Queue())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var mutations []Mutation
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var m Mutation
		if err := json.Unmarshal(line, &m); err != nil {
			log.Warnf("sync: skipping malformed queue line: %s", err)
			continue
		}
		mutations = append(mutations, m)
	}

	return mutations, scanner.Err()
}

// Result reports what a flush did.
type Result struct {
	Applied []Mutation
	Failed  []Mutation
	Errors  []error
}

// Flush replays the queue in order. Successful mutations are removed from the file; failures stay queued.
// Mutations are collapsed first, so only the latest update of a manga is sent.
func Flush(ctx context.Context, tracker Tracker) (*Result, error) {
	pending, err := Pending()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, m := range collapse(pending) {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, m)
			continue
		}

		record := m.Record
		switch m.Action {
		case ActionUpdate:
			_, err = tracker.AddOrUpdate(ctx, &record, m.UserID)
		case ActionDelete:
			err = tracker.Delete(ctx, &record)
		default:
			err = fmt.Errorf("unknown action %q", m.Action)
		}

		if err != nil {
			log.Errorf("sync: replaying %s of %d: %s", m.Action, record.RemoteID, err)
			result.Failed = append(result.Failed, m)
			result.Errors = append(result.Errors, err)
			continue
		}

		m.Record = record
		result.Applied = append(result.Applied, m)
	}

	return result, rewrite(result.Failed)
}

// Discard drops every pending mutation of a manga and returns how many were dropped.
// Call it once a newer write of that manga reached the tracker directly.
func Discard(remoteID int64) (int, error) {
	pending, err := Pending()
	if err != nil {
		return 0, err
	}

	kept := lo.Reject(pending, func(m Mutation, _ int) bool {
		return m.Record.RemoteID == remoteID
	})

	dropped := len(pending) - len(kept)
	if dropped == 0 {
		return 0, nil
	}

	log.Infof("sync: discarded %d queued mutations of %d", dropped, remoteID)
	return dropped, rewrite(kept)
}

// collapse keeps the last mutation per manga, preserving the order of those last mutations.
func collapse(mutations []Mutation) []Mutation {
	last := make(map[int64]int, len(mutations))
	for i, m := range mutations {
		last[m.Record.RemoteID] = i
	}

	return lo.Filter(mutations, func(m Mutation, i int) bool {
		return last[m.Record.RemoteID] == i
	})
}

func rewrite(mutations []Mutation) error {
	if len(mutations) == 0 {
		err := filesystem.API().Remove(where.Queue())
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	for _, m := range mutations {
		if err := encoder.Encode(m); err != nil {
			return err
		}
	}

	return filesystem.API().WriteFile(where.Queue(), buf.Bytes(), 0o644)
}
