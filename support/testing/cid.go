package testing

import (
	"fmt"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// NewCidForTestGetter returns a closure that returns a raw-codec Cid unique to that invocation.
// The Cid is unique wrt the closure returned, not globally. Useful as code CIDs of
// actors installed only for a test: like real code, their content is not in the state store.
func NewCidForTestGetter(prefix string) func() cid.Cid {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.SHA2_256}
	i := 0
	return func() cid.Cid {
		c, err := builder.Sum([]byte(fmt.Sprintf("%s/%d", prefix, i)))
		if err != nil {
			panic(err)
		}
		i++
		return c
	}
}
