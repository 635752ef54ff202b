package agent

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/pkg/errors"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/builtin/transfer"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
	vm "github.com/vestlabs/vesting-actors/support/vm"
)

// Sim drives a population of agents against a VM holding a vesting factory, one block per tick.
type Sim struct {
	Config   SimConfig
	Accounts []address.Address
	Factory  address.Address
	Agents   []Agent
	v        *vm.VM
	rnd      *rand.Rand
}

type SimConfig struct {
	AccountCount          int
	AccountInitialBalance types.Coins
	Seed                  int64
	StartTime             types.Timestamp
	SecondsPerTick        uint64
}

// Agent produces the messages it wants included in the next block.
type Agent interface {
	Tick(s SimState) ([]message, error)
}

// An agent that can verify its own view of the state after a block.
type invariantChecker interface {
	CheckInvariants(s SimState) error
}

// SimState is the read access agents have to the simulation.
type SimState interface {
	BlockTime() types.Timestamp
	GetState(addr address.Address, out cbor.Unmarshaler) error
	GetBalance(addr address.Address, denom string) abi.TokenAmount
	Store() adt.Store
	FactoryAddress() address.Address
	AddAgent(a Agent)
}

type ReturnHandler func(s SimState, msg message, ret cbor.Marshaler) error

type message struct {
	From          address.Address
	To            address.Address
	Value         types.Coins
	Method        abi.MethodNum
	Params        interface{}
	ReturnHandler ReturnHandler
}

// NewSim creates a VM with funded accounts and a vesting factory.
func NewSim(ctx context.Context, t testing.TB, config SimConfig) *Sim {
	v := vm.NewVMWithSingletons(ctx, t, vm.WithTime(0, config.StartTime))
	accounts := vm.CreateAccounts(ctx, t, v, config.AccountCount, config.AccountInitialBalance, config.Seed)
	codeID := vm.InstallCode(t, v, builtin.VestingActorCodeID)

	return &Sim{
		Config:   config,
		Accounts: accounts,
		Factory:  vm.CreateFactory(t, v, codeID),
		v:        v,
		rnd:      rand.New(rand.NewSource(config.Seed)),
	}
}

func (s *Sim) Tick() error {
	var blockMessages []message

	// agents added while handling returns act from the next tick
	agents := append([]Agent(nil), s.Agents...)
	for _, agent := range agents {
		msgs, err := agent.Tick(s)
		if err != nil {
			return err
		}
		blockMessages = append(blockMessages, msgs...)
	}

	// shuffle messages
	s.rnd.Shuffle(len(blockMessages), func(i, j int) {
		blockMessages[i], blockMessages[j] = blockMessages[j], blockMessages[i]
	})

	// run messages
	for _, msg := range blockMessages {
		result := s.v.ApplyMessage(msg.From, msg.To, msg.Value, msg.Method, msg.Params)

		// for now, assume everything should work
		if result.Code != exitcode.Ok {
			return errors.Errorf("exitcode %d: message failed: %v\n%s\n", result.Code, msg, strings.Join(s.v.GetLogs(), "\n"))
		}

		if msg.ReturnHandler != nil {
			if err := msg.ReturnHandler(s, msg, result.Ret); err != nil {
				return err
			}
		}
	}

	var err error
	s.v, err = s.v.WithBlockTime(s.v.GetBlockTime().Add(s.Config.SecondsPerTick))
	return errors.Wrap(err, "failed to advance block time")
}

// CheckInvariants checks the factory and transfer actor states and every agent's own invariants.
func (s *Sim) CheckInvariants() error {
	var factorySt vestingfactory.State
	if err := s.v.GetState(s.Factory, &factorySt); err != nil {
		return err
	}
	_, acc := vestingfactory.CheckStateInvariants(&factorySt, s.v.Store())

	var transferSt transfer.State
	if err := s.v.GetState(builtin.TransferActorAddr, &transferSt); err != nil {
		return err
	}
	_, transferAcc := transfer.CheckStateInvariants(&transferSt, s.v.Store())
	acc.AddAll(transferAcc)
	if !acc.IsEmpty() {
		return errors.Errorf("state invariants broken:\n%s", strings.Join(acc.Messages(), "\n"))
	}

	for _, agent := range s.Agents {
		if checker, ok := agent.(invariantChecker); ok {
			if err := checker.CheckInvariants(s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Sim) AddAgent(a Agent) {
	s.Agents = append(s.Agents, a)
}

func (s *Sim) GetVM() *vm.VM {
	return s.v
}

func (s *Sim) BlockTime() types.Timestamp {
	return s.v.GetBlockTime()
}

func (s *Sim) GetState(addr address.Address, out cbor.Unmarshaler) error {
	return s.v.GetState(addr, out)
}

func (s *Sim) GetBalance(addr address.Address, denom string) abi.TokenAmount {
	return s.v.GetBalance(addr, denom)
}

func (s *Sim) Store() adt.Store {
	return s.v.Store()
}

func (s *Sim) FactoryAddress() address.Address {
	return s.Factory
}
