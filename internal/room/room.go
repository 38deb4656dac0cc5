// Package room manages live Tranca matches: it owns the authoritative
// round state, serializes access to it, drives bot seats and persists a
// snapshot after every applied action so a match survives a restart.
package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RobertoCosta33/baralho/bot"
	"github.com/RobertoCosta33/baralho/engine"
	"github.com/RobertoCosta33/baralho/internal/store"
)

// OnRoundEndFunc is called after a round finishes, outside the room
// lock. Winner is -1 for a drawn round.
type OnRoundEndFunc func(roomID uuid.UUID, winner int8, roundScores [engine.NumTeams]int)

// Room is a single running match.
type Room struct {
	ID uuid.UUID

	mu    sync.Mutex
	state engine.RoundState

	store store.Store
	log   *logrus.Entry

	// BotDelay paces bot actions so a human can follow the table.
	BotDelay   time.Duration
	OnRoundEnd OnRoundEndFunc
}

func snapshotKey(id uuid.UUID) string { return "room:" + id.String() }

// New deals a fresh round for the given seat names. Seats with an empty
// name become bots.
func New(st store.Store, log *logrus.Logger, names [engine.NumPlayers]string, bots [engine.NumPlayers]bool, seed uint64) (*Room, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("new room id: %w", err)
	}

	r := &Room{
		ID:    id,
		store: st,
		log:   log.WithField("room", id.String()),
	}
	r.state = engine.NewRound(seed)
	for i := range r.state.Players {
		r.state.Players[i].Name = names[i]
		r.state.Players[i].IsBot = bots[i]
	}
	r.state.Deal()

	if err := r.persist(context.Background()); err != nil {
		return nil, err
	}
	r.log.WithField("seed", seed).Info("room created")
	return r, nil
}

// Resume restores a room from its persisted snapshot.
func Resume(ctx context.Context, st store.Store, log *logrus.Logger, id uuid.UUID) (*Room, error) {
	blob, err := st.Get(ctx, snapshotKey(id))
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", id, err)
	}
	state, err := engine.UnmarshalSnapshot(blob)
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", id, err)
	}

	r := &Room{
		ID:    id,
		store: st,
		log:   log.WithField("room", id.String()),
		state: *state,
	}
	r.log.WithField("phase", r.state.Phase.String()).Info("room resumed")
	return r, nil
}

// View returns a deep copy of the current round state for rendering.
func (r *Room) View() *engine.RoundState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone()
}

// Apply submits one action to the round. On success the new state is
// persisted; a persistence failure is logged but does not undo the
// action. When the action ends the round, OnRoundEnd fires after the
// lock is released.
func (r *Room) Apply(ctx context.Context, a engine.Action) error {
	r.mu.Lock()
	wasOver := r.state.IsTerminal()
	if err := r.state.Apply(a); err != nil {
		r.mu.Unlock()
		return err
	}
	if err := r.persist(ctx); err != nil {
		r.log.WithError(err).Error("persist after action failed")
	}
	ended := !wasOver && r.state.IsTerminal()
	winner := r.state.Winner
	var scores [engine.NumTeams]int
	for i := range r.state.Teams {
		scores[i] = r.state.Teams[i].RoundScore
	}
	r.mu.Unlock()

	if ended {
		r.log.WithFields(logrus.Fields{
			"winner": winner,
			"scores": scores,
		}).Info("round ended")
		if r.OnRoundEnd != nil {
			r.OnRoundEnd(r.ID, winner, scores)
		}
	}
	return nil
}

// RunBots plays every consecutive bot turn, pausing BotDelay between
// turns. It returns when a human seat is up, the round ends or the
// context is cancelled.
func (r *Room) RunBots(ctx context.Context) error {
	for {
		r.mu.Lock()
		if r.state.IsTerminal() || !r.state.CurrentPlayer().IsBot {
			r.mu.Unlock()
			return nil
		}
		seat := r.state.Current
		err := bot.TakeTurn(&r.state)
		if err == nil {
			if perr := r.persist(ctx); perr != nil {
				r.log.WithError(perr).Error("persist after bot turn failed")
			}
		}
		ended := r.state.IsTerminal()
		winner := r.state.Winner
		var scores [engine.NumTeams]int
		for i := range r.state.Teams {
			scores[i] = r.state.Teams[i].RoundScore
		}
		r.mu.Unlock()

		if err != nil {
			return fmt.Errorf("bot at seat %d: %w", seat, err)
		}
		r.log.WithField("seat", seat).Debug("bot turn complete")

		if ended {
			r.log.WithFields(logrus.Fields{
				"winner": winner,
				"scores": scores,
			}).Info("round ended")
			if r.OnRoundEnd != nil {
				r.OnRoundEnd(r.ID, winner, scores)
			}
			return nil
		}

		if r.BotDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.BotDelay):
			}
		}
	}
}

// NextRound re-deals for the next round of the same match, carrying the
// cumulative team scores forward.
func (r *Room) NextRound(ctx context.Context, seed uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.state.IsTerminal() {
		return fmt.Errorf("round still in progress")
	}
	r.state.Redeal(seed)
	if err := r.persist(ctx); err != nil {
		r.log.WithError(err).Error("persist after redeal failed")
	}
	r.log.WithField("seed", seed).Info("next round dealt")
	return nil
}

// Forget deletes the room's persisted snapshot.
func (r *Room) Forget(ctx context.Context) error {
	return r.store.Delete(ctx, snapshotKey(r.ID))
}

// persist writes the snapshot. Callers hold the room lock.
func (r *Room) persist(ctx context.Context) error {
	blob, err := r.state.MarshalSnapshot()
	if err != nil {
		return fmt.Errorf("snapshot room %s: %w", r.ID, err)
	}
	if err := r.store.Put(ctx, snapshotKey(r.ID), blob); err != nil {
		return fmt.Errorf("persist room %s: %w", r.ID, err)
	}
	return nil
}
