package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/filecoin-project/go-bitfield"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/actors/types"
)

var bfDecodeCmd = &cli.Command{
	Name:      "bf",
	Usage:     "decode a bitfield, e.g. the init actor's allocated ids",
	ArgsUsage: "<hex>",
	Action:    runDecodeBFCmd,
}

var intDecodeCmd = &cli.Command{
	Name:      "int",
	Usage:     "decode a big.Int",
	ArgsUsage: "<hex>",
	Action:    runDecodeIntCmd,
}

var vestingDecodeCmd = &cli.Command{
	Name:      "vesting",
	Usage:     "decode a vesting actor state, optionally computing what is claimable",
	ArgsUsage: "<hex>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "balance", Usage: "actor balance in the vesting denom"},
		&cli.Uint64Flag{Name: "now", Usage: "block time, in seconds, to compute the claimable amount at"},
	},
	Action: runDecodeVestingCmd,
}

var factoryDecodeCmd = &cli.Command{
	Name:      "factory",
	Usage:     "decode a vesting factory state",
	ArgsUsage: "<hex>",
	Action:    runDecodeFactoryCmd,
}

func newApp(w io.Writer) *cli.App {
	app := &cli.App{
		Name:        "decode",
		Usage:       "Decode a hex encoded data structure",
		Description: "Decode a hex encoded data structure",
		Writer:      w,
		Commands: []*cli.Command{
			bfDecodeCmd,
			intDecodeCmd,
			vestingDecodeCmd,
			factoryDecodeCmd,
		},
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	for _, c := range app.Commands {
		sort.Sort(cli.FlagsByName(c.Flags))
	}
	return app
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func hexArg(ctx *cli.Context) ([]byte, error) {
	if ctx.NArg() != 1 {
		return nil, xerrors.Errorf("expected exactly one hex argument, got %d", ctx.NArg())
	}
	return hex.DecodeString(ctx.Args().First())
}

func runDecodeBFCmd(ctx *cli.Context) error {
	b, err := hexArg(ctx)
	if err != nil {
		return err
	}

	bf, err := bitfield.NewFromBytes(b)
	if err != nil {
		return err
	}

	return bf.ForEach(func(u uint64) error {
		_, err := fmt.Fprintln(ctx.App.Writer, u)
		return err
	})
}

func runDecodeIntCmd(ctx *cli.Context) error {
	b, err := hexArg(ctx)
	if err != nil {
		return err
	}

	i, err := big.FromBytes(b)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(ctx.App.Writer, i)
	return err
}

func runDecodeVestingCmd(ctx *cli.Context) error {
	b, err := hexArg(ctx)
	if err != nil {
		return err
	}

	var st vesting.State
	if err := st.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return xerrors.Errorf("failed to decode vesting state: %w", err)
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "denom:    %s\n", st.Denom)
	fmt.Fprintf(w, "receiver: %s\n", st.Receiver)
	fmt.Fprintf(w, "claimer:  %s\n", st.Claimer)
	fmt.Fprintf(w, "start:    %d\n", st.Start)
	fmt.Fprintf(w, "end:      %d\n", st.End)

	if !ctx.IsSet("balance") {
		return nil
	}
	balance, err := big.FromString(ctx.String("balance"))
	if err != nil {
		return xerrors.Errorf("invalid balance: %w", err)
	}
	amount, err := st.ReleasableAmount(balance, types.Timestamp(ctx.Uint64("now")))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "claimable: %s%s\n", amount, st.Denom)
	return err
}

func runDecodeFactoryCmd(ctx *cli.Context) error {
	b, err := hexArg(ctx)
	if err != nil {
		return err
	}

	var st vestingfactory.State
	if err := st.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return xerrors.Errorf("failed to decode factory state: %w", err)
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "vesting code id:   %d\n", st.VestingCodeID)
	fmt.Fprintf(w, "next reply id:     %d\n", st.NextReplyID)
	fmt.Fprintf(w, "pending inits:     %s\n", st.PendingInits)
	_, err = fmt.Fprintf(w, "vesting contracts: %s\n", st.VestingContracts)
	return err
}
