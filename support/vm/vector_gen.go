package vm

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/filecoin-project/go-address"
	abi "github.com/filecoin-project/go-state-types/abi"
	cid "github.com/ipfs/go-cid"
	"github.com/minio/blake2b-simd"
	"github.com/multiformats/go-multibase"
	"golang.org/x/xerrors"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/types"
)

//
// Test Vector generation utilities
//

// Directory to write vectors to. Generation is off when unset.
const vectorsDirEnv = "VESTING_ACTORS_VECTORS"

type vectorGen struct {
	dir string
}

// testVector is a single applied message with the state before and after it.
// The post-state tree is embedded as a multibase encoded, gzipped CAR.
type testVector struct {
	From      string      `json:"from"`
	To        string      `json:"to"`
	Method    uint64      `json:"method"`
	Params    []byte      `json:"params,omitempty"`
	Value     string      `json:"value"`
	Epoch     int64       `json:"epoch"`
	BlockTime uint64      `json:"block_time"`
	PreRoot   string      `json:"pre_root"`
	PostRoot  string      `json:"post_root"`
	Receipt   *Receipt    `json:"receipt"`
	Attrs     []Attribute `json:"attributes,omitempty"`
	CAR       string      `json:"car,omitempty"`
}

func newVectorGen() *vectorGen {
	// check environment variables to determine if generation is on
	return &vectorGen{dir: os.Getenv(vectorsDirEnv)}
}

func (g *vectorGen) enabled() bool {
	return g != nil && g.dir != ""
}

func (g *vectorGen) after(v *VM, from, to address.Address, value types.Coins, method abi.MethodNum, params interface{}, preRoot cid.Cid, receipt *Receipt) error {
	if !g.enabled() {
		return nil
	}

	vector := testVector{
		From:      from.String(),
		To:        to.String(),
		Method:    uint64(method),
		Params:    paramBytes(params),
		Value:     value.String(),
		Epoch:     int64(v.epoch),
		BlockTime: v.blockTime.Seconds(),
		PreRoot:   preRoot.String(),
		PostRoot:  v.StateRoot().String(),
		Receipt:   receipt,
		Attrs:     receipt.Attributes,
	}
	var err error
	if v.blocks != nil {
		var car bytes.Buffer
		gz := gzip.NewWriter(&car)
		if err := v.ExportCar(gz); err != nil {
			return xerrors.Errorf("failed to export state: %w", err)
		}
		if err := gz.Close(); err != nil {
			return err
		}
		if vector.CAR, err = multibase.Encode(multibase.Base64, car.Bytes()); err != nil {
			return err
		}
	}

	vectorBytes, err := json.MarshalIndent(&vector, "", "  ")
	if err != nil {
		return err
	}

	actName := "unknown"
	if act, found, err := v.GetActor(to); err == nil && found {
		actName = builtin.ActorNameByCode(act.Code)
	}

	h := blake2b.Sum256(vectorBytes)
	fname := fmt.Sprintf("%x-%s-%d.json", h[:8], actName, method)
	return writeVector(actName, fname, vectorBytes, g.dir)
}

// rootDir is the top level directory containing all vectors
// dname is the subdirectory path containing the file to write
// fname is the name of this file
// vectorBytes is the data to write to file
func writeVector(dname, fname string, vectorBytes []byte, rootDir string) error {
	dir := filepath.Join(rootDir, dname)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fname), vectorBytes, 0644)
}
