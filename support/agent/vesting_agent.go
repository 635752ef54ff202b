package agent

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/pkg/errors"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/actors/types"
)

type VestingAgentConfig struct {
	Denom      string             // denom of vested funds
	MinAmount  int64              // smallest amount vested by one contract
	MaxAmount  int64              // largest amount vested by one contract
	Strategies []vesting.Strategy // strategies chosen from uniformly
	IBCShare   float64            // fraction of contracts paying a remote receiver
	ChannelID  string             // channel used by remote receivers
	ClaimRate  float64            // average number of claims per contract per tick
}

// VestingGenerator has funders create one vesting contract for each receiver, at random times.
type VestingGenerator struct {
	config         VestingAgentConfig
	createEvents   *RateIterator
	funders        []address.Address
	receivers      []address.Address
	contractsAsked int
	rnd            *rand.Rand
}

func NewVestingGenerator(funders, receivers []address.Address, config VestingAgentConfig, createRate float64, rndSeed int64) *VestingGenerator {
	rnd := rand.New(rand.NewSource(rndSeed))
	return &VestingGenerator{
		config:       config,
		createEvents: NewRateIterator(createRate, rnd.Int63()),
		funders:      funders,
		receivers:    receivers,
		rnd:          rnd,
	}
}

func (vg *VestingGenerator) Tick(s SimState) ([]message, error) {
	var msgs []message
	if vg.contractsAsked >= len(vg.receivers) {
		return msgs, nil
	}

	err := vg.createEvents.Tick(func() error {
		if vg.contractsAsked < len(vg.receivers) {
			claimer := vg.receivers[vg.contractsAsked]
			funder := vg.funders[vg.rnd.Intn(len(vg.funders))]
			vg.contractsAsked++
			msgs = append(msgs, vg.createVesting(s.FactoryAddress(), funder, claimer))
		}
		return nil
	})
	return msgs, err
}

func (vg *VestingGenerator) createVesting(factory, funder, claimer address.Address) message {
	receiver := vesting.NewNativeReceiver(claimer)
	if vg.rnd.Float64() < vg.config.IBCShare {
		receiver = vesting.NewIBCReceiver(fmt.Sprintf("cosmos1agent%d", vg.contractsAsked), vg.config.ChannelID, claimer)
	}
	strategy := vg.config.Strategies[vg.rnd.Intn(len(vg.config.Strategies))]
	amount := vg.config.MinAmount + vg.rnd.Int63n(vg.config.MaxAmount-vg.config.MinAmount+1)

	return message{
		From:   funder,
		To:     factory,
		Value:  types.NewCoins(types.NewCoin(vg.config.Denom, amount)),
		Method: builtin.MethodsVestingFactory.CreateVesting,
		Params: &vestingfactory.CreateVestingParams{
			Receiver: receiver,
			Strategy: strategy,
			Label:    "agent " + receiver.Key(),
		},
		ReturnHandler: func(s SimState, msg message, _ cbor.Marshaler) error {
			params, ok := msg.Params.(*vestingfactory.CreateVestingParams)
			if !ok {
				return errors.Errorf("create vesting params has wrong type: %v", msg.Params)
			}

			var st vestingfactory.State
			if err := s.GetState(s.FactoryAddress(), &st); err != nil {
				return err
			}
			instance, found, err := st.GetVestingContract(s.Store(), params.Receiver.Key())
			if err != nil {
				return err
			}
			if !found {
				return errors.Errorf("no vesting contract recorded for %s", params.Receiver.Key())
			}

			s.AddAgent(NewClaimerAgent(claimer, instance, msg.Value[0], vg.config.ClaimRate, vg.rnd.Int63()))
			return nil
		},
	}
}

// ClaimerAgent claims from one vesting contract at random times and tracks what it has been paid.
type ClaimerAgent struct {
	Claimer  address.Address
	Instance address.Address
	Funded   types.Coin
	Claimed  abi.TokenAmount
	Claims   int

	// iterator to time claims according to rate
	claimEvents *RateIterator
}

func NewClaimerAgent(claimer, instance address.Address, funded types.Coin, claimRate float64, rndSeed int64) *ClaimerAgent {
	return &ClaimerAgent{
		Claimer:     claimer,
		Instance:    instance,
		Funded:      funded,
		Claimed:     big.Zero(),
		claimEvents: NewRateIterator(claimRate, rndSeed),
	}
}

func (ca *ClaimerAgent) Tick(s SimState) ([]message, error) {
	var msgs []message
	err := ca.claimEvents.Tick(func() error {
		// at most one claim per block, later ones would only repeat it
		if len(msgs) > 0 {
			return nil
		}

		var st vesting.State
		if err := s.GetState(ca.Instance, &st); err != nil {
			return err
		}
		expected, err := st.ReleasableAmount(s.GetBalance(ca.Instance, st.Denom), s.BlockTime())
		if err != nil {
			return errors.Wrapf(err, "failed to compute releasable amount of %v", ca.Instance)
		}
		msgs = append(msgs, ca.claim(expected))
		return nil
	})
	return msgs, err
}

func (ca *ClaimerAgent) claim(expected abi.TokenAmount) message {
	return message{
		From:   ca.Claimer,
		To:     ca.Instance,
		Method: builtin.MethodsVesting.Claim,
		ReturnHandler: func(_ SimState, _ message, ret cbor.Marshaler) error {
			claimRet, ok := ret.(*vesting.ClaimReturn)
			if !ok {
				return errors.Errorf("claim return has wrong type: %v", ret)
			}
			if !claimRet.Amount.Equals(expected) {
				return errors.Errorf("claim from %v paid %v, expected %v", ca.Instance, claimRet.Amount, expected)
			}

			ca.Claimed = big.Add(ca.Claimed, claimRet.Amount)
			ca.Claims++
			return nil
		},
	}
}

// CheckInvariants checks that the contract balance plus everything claimed is what was funded.
func (ca *ClaimerAgent) CheckInvariants(s SimState) error {
	var st vesting.State
	if err := s.GetState(ca.Instance, &st); err != nil {
		return err
	}
	balance := s.GetBalance(ca.Instance, ca.Funded.Denom)

	_, acc := vesting.CheckStateInvariants(&st, balance)
	if !big.Add(balance, ca.Claimed).Equals(ca.Funded.Amount) {
		acc.Addf("balance %v plus claimed %v does not match funded %v", balance, ca.Claimed, ca.Funded)
	}
	if st.Start > s.BlockTime() {
		acc.Addf("vesting start %v is after block time %v", st.Start, s.BlockTime())
	}
	if !acc.IsEmpty() {
		return errors.Errorf("vesting %v: %s", ca.Instance, strings.Join(acc.Messages(), "; "))
	}
	return nil
}
