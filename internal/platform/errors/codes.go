package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Player errors
	CodePlayerAlreadyRegistered Code = "PLAYER_ALREADY_REGISTERED"
	CodePlayerEmptyNickname     Code = "PLAYER_EMPTY_NICKNAME"
	CodePlayerDown              Code = "PLAYER_DOWN"
	CodeInsufficientFunds       Code = "INSUFFICIENT_FUNDS"
	CodeCooldownActive          Code = "COOLDOWN_ACTIVE"

	// Item errors
	CodeItemUnknown      Code = "ITEM_UNKNOWN"
	CodeItemNotOwned     Code = "ITEM_NOT_OWNED"
	CodeItemNotEquipable Code = "ITEM_NOT_EQUIPABLE"
	CodeItemNotUsable    Code = "ITEM_NOT_USABLE"

	// Battle errors
	CodeBattleCombatantDown Code = "BATTLE_COMBATANT_DOWN"
	CodeBattleSelfTarget    Code = "BATTLE_SELF_TARGET"
	CodeSelfTarget          Code = "SELF_TARGET"

	// Board and property errors
	CodeTileNotOwnable     Code = "TILE_NOT_OWNABLE"
	CodePropertyOwned      Code = "PROPERTY_ALREADY_OWNED"
	CodePropertyNotOwned   Code = "PROPERTY_NOT_OWNED"
	CodePropertyLevelCap   Code = "PROPERTY_LEVEL_CAP"
	CodePropertyNotYours   Code = "PROPERTY_NOT_YOURS"
	CodeInvalidDiceRoll    Code = "INVALID_DICE_ROLL"
	CodeCheckInAlreadyDone Code = "CHECKIN_ALREADY_DONE"
	CodeFishingRodMissing  Code = "FISHING_ROD_MISSING"

	// Marriage errors
	CodeProposalPending Code = "PROPOSAL_PENDING"
	CodeProposalMissing Code = "PROPOSAL_MISSING"
	CodeAlreadyMarried  Code = "ALREADY_MARRIED"
	CodeNotMarried      Code = "NOT_MARRIED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodePlayerEmptyNickname,
		CodeInvalidDiceRoll,
		CodeItemNotEquipable,
		CodeItemNotUsable:
		return codes.InvalidArgument

	// NotFound - missing records
	case CodeNotFound,
		CodeItemUnknown:
		return codes.NotFound

	// FailedPrecondition - state disallows the operation
	case CodePlayerDown,
		CodeBattleCombatantDown,
		CodeBattleSelfTarget,
		CodeSelfTarget,
		CodeTileNotOwnable,
		CodePropertyOwned,
		CodePropertyNotOwned,
		CodePropertyLevelCap,
		CodePropertyNotYours,
		CodeCheckInAlreadyDone,
		CodeFishingRodMissing,
		CodeProposalPending,
		CodeProposalMissing,
		CodeAlreadyMarried,
		CodeNotMarried,
		CodeItemNotOwned,
		CodeInsufficientFunds:
		return codes.FailedPrecondition

	// AlreadyExists - duplicate creation
	case CodePlayerAlreadyRegistered:
		return codes.AlreadyExists

	// ResourceExhausted - rate limiting
	case CodeCooldownActive:
		return codes.ResourceExhausted

	default:
		return codes.Internal
	}
}
