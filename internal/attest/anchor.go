package attest

import (
	"context"
	"log/slog"

	"zkattest/internal/network"
)

// CheckAnchoring applies the mode-specific trust rules shared by engines
// whose proofs carry a claimed boolean outcome:
//
//   - A live-marked proof must be anchored: tx id and instance address
//     present, instance state found on chain with a matching outcome,
//     transaction confirmed, and any claimed block height matching the
//     confirmed one. Pending live proofs are rejected outright.
//   - A mocked proof is trusted only when the verifying engine is itself
//     offline; an engine that believes it is live never accepts a
//     placeholder.
//
// Every failure resolves to false, never an error: verification failure is an
// ordinary outcome.
func CheckAnchoring(ctx context.Context, p *Proof, claimed bool, mode network.Mode, ledger Ledger, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}

	switch p.NetworkSignal() {
	case string(network.ModeLive):
		return checkLiveAnchoring(ctx, p, claimed, ledger, logger)
	case string(network.ModeMocked):
		if mode != network.ModeMocked {
			logger.Warn("rejecting mocked proof while engine is in live mode",
				"statement_type", string(p.StatementType))
			return false
		}
		return true
	default:
		// No network marker at all, e.g. a failure proof.
		return false
	}
}

func checkLiveAnchoring(ctx context.Context, p *Proof, claimed bool, ledger Ledger, logger *slog.Logger) bool {
	if p.IsPending() {
		logger.Info("rejecting pending live proof without on-chain reference",
			"statement_type", string(p.StatementType))
		return false
	}
	if ledger == nil {
		logger.Warn("cannot verify live proof without an indexer provider",
			"statement_type", string(p.StatementType))
		return false
	}

	state, err := ledger.InstanceState(ctx, p.OnChainRef.InstanceAddress)
	if err != nil {
		logger.Info("instance state not found on chain",
			"instance_address", p.OnChainRef.InstanceAddress)
		return false
	}
	if state.Verified != claimed {
		logger.Warn("on-chain state contradicts proof signals",
			"instance_address", p.OnChainRef.InstanceAddress,
			"on_chain", state.Verified,
			"claimed", claimed,
		)
		return false
	}

	tx, err := ledger.Transaction(ctx, p.OnChainRef.TxID)
	if err != nil {
		logger.Info("transaction not confirmed on chain", "tx_id", p.OnChainRef.TxID)
		return false
	}
	if p.OnChainRef.BlockHeight != 0 && p.OnChainRef.BlockHeight != tx.BlockHeight {
		logger.Warn("claimed block height does not match confirmation",
			"tx_id", p.OnChainRef.TxID,
			"claimed", p.OnChainRef.BlockHeight,
			"confirmed", tx.BlockHeight,
		)
		return false
	}

	return true
}
