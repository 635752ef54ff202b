package builtin

import (
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/vestlabs/vesting-actors/actors/runtime"
	"github.com/vestlabs/vesting-actors/actors/types"
)

///// Code shared by multiple built-in actors. /////

// Aborts with an ErrIllegalArgument if predicate is not true.
func RequireParam(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalArgument, msg, args...)
	}
}

// Aborts with an ErrIllegalState if predicate is not true.
func RequireState(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalState, msg, args...)
	}
}

// Aborts with a formatted message if err is not nil.
// The provided message will be suffixed by ": %s" and the provided args suffixed by the err.
func RequireNoErr(rt runtime.Runtime, err error, defaultExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	if err != nil {
		newMsg := msg + ": %s"
		newArgs := append(args, err)
		code := exitcode.Unwrap(err, defaultExitCode)
		rt.Abortf(code, newMsg, newArgs...)
	}
}

// RequireOneCoin checks the funds attached to a message hold exactly one
// non-zero coin and returns it.
func RequireOneCoin(rt runtime.Runtime, funds types.Coins) types.Coin {
	switch len(funds) {
	case 0:
		rt.Abortf(exitcode.ErrInsufficientFunds, "no funds sent")
	case 1:
	default:
		rt.Abortf(exitcode.ErrIllegalArgument, "sent more than one denom: %s", funds)
	}
	coin := funds[0]
	if coin.Amount.IsZero() {
		rt.Abortf(exitcode.ErrInsufficientFunds, "no funds sent")
	}
	RequireNoErr(rt, coin.Validate(), exitcode.ErrIllegalArgument, "invalid funds")
	return coin
}

// Formats a missing-entry error carrying ErrNotFound.
func NotFoundf(msg string, args ...interface{}) error {
	return exitcode.ErrNotFound.Wrapf(msg, args...)
}

