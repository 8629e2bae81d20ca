package app

import (
	"context"
	"errors"

	"github.com/louisbranch/wayfarer/internal/game/domain"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

// Propose records a marriage proposal on the target's pending slot. A target
// can hold only one pending proposal at a time.
func (s *Service) Propose(ctx context.Context, proposerID, targetNickname string) error {
	ctx, span := s.tracer.Start(ctx, "game.Propose")
	defer span.End()

	target, err := s.getPlayerByNickname(ctx, targetNickname)
	if err != nil {
		return err
	}
	if target.ID == proposerID {
		return apperrors.New(apperrors.CodeSelfTarget, "cannot propose to yourself")
	}

	unlock := s.locks.lockPair(proposerID, target.ID)
	defer unlock()

	proposer, err := s.getPlayer(ctx, proposerID)
	if err != nil {
		return err
	}
	target, err = s.getPlayer(ctx, target.ID)
	if err != nil {
		return err
	}

	if proposer.MarriedTo(target.Nickname) {
		return apperrors.WithMetadata(apperrors.CodeAlreadyMarried,
			"already married to this player", map[string]string{"nickname": target.Nickname})
	}
	if target.PendingProposal != "" {
		return apperrors.New(apperrors.CodeProposalPending,
			"target already has a pending proposal")
	}

	target.PendingProposal = proposer.Nickname
	return s.store.SavePlayer(ctx, target)
}

// AcceptProposal turns the pending proposal into a marriage on both records.
func (s *Service) AcceptProposal(ctx context.Context, playerID string) (domain.Player, error) {
	ctx, span := s.tracer.Start(ctx, "game.AcceptProposal")
	defer span.End()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, err
	}
	if player.PendingProposal == "" {
		return domain.Player{}, apperrors.New(apperrors.CodeProposalMissing, "no pending proposal")
	}

	proposer, err := s.getPlayerByNickname(ctx, player.PendingProposal)
	if err != nil {
		// The proposer vanished; clear the stale slot.
		if apperrors.GetCode(err) == apperrors.CodeNotFound {
			if clearErr := s.clearProposal(ctx, playerID); clearErr != nil {
				return domain.Player{}, clearErr
			}
		}
		return domain.Player{}, err
	}

	unlock := s.locks.lockPair(playerID, proposer.ID)
	defer unlock()

	player, err = s.getPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, err
	}
	proposer, err = s.getPlayer(ctx, proposer.ID)
	if err != nil {
		return domain.Player{}, err
	}
	// Re-check under the locks; the slot may have changed in between.
	if player.PendingProposal != proposer.Nickname {
		return domain.Player{}, apperrors.New(apperrors.CodeProposalMissing, "no pending proposal")
	}

	player.PendingProposal = ""
	if !player.MarriedTo(proposer.Nickname) {
		player.Spouses = append(player.Spouses, proposer.Nickname)
	}
	if !proposer.MarriedTo(player.Nickname) {
		proposer.Spouses = append(proposer.Spouses, player.Nickname)
	}

	if err := errors.Join(
		s.store.SavePlayer(ctx, player),
		s.store.SavePlayer(ctx, proposer),
	); err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

// RejectProposal discards the pending proposal.
func (s *Service) RejectProposal(ctx context.Context, playerID string) error {
	ctx, span := s.tracer.Start(ctx, "game.RejectProposal")
	defer span.End()

	return s.clearProposal(ctx, playerID)
}

func (s *Service) clearProposal(ctx context.Context, playerID string) error {
	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if player.PendingProposal == "" {
		return apperrors.New(apperrors.CodeProposalMissing, "no pending proposal")
	}
	player.PendingProposal = ""
	return s.store.SavePlayer(ctx, player)
}

// Divorce dissolves the marriage with the named spouse on both records.
func (s *Service) Divorce(ctx context.Context, playerID, spouseNickname string) error {
	ctx, span := s.tracer.Start(ctx, "game.Divorce")
	defer span.End()

	spouse, err := s.getPlayerByNickname(ctx, spouseNickname)
	if err != nil {
		return err
	}

	unlock := s.locks.lockPair(playerID, spouse.ID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	spouse, err = s.getPlayer(ctx, spouse.ID)
	if err != nil {
		return err
	}

	if !player.MarriedTo(spouse.Nickname) {
		return apperrors.WithMetadata(apperrors.CodeNotMarried,
			"not married to this player", map[string]string{"nickname": spouse.Nickname})
	}

	removeSpouse(&player, spouse.Nickname)
	removeSpouse(&spouse, player.Nickname)

	return errors.Join(
		s.store.SavePlayer(ctx, player),
		s.store.SavePlayer(ctx, spouse),
	)
}

func removeSpouse(p *domain.Player, nickname string) {
	for i, s := range p.Spouses {
		if s == nickname {
			p.Spouses = append(p.Spouses[:i], p.Spouses[i+1:]...)
			return
		}
	}
}
