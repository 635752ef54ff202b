package ipld

import (
	"bytes"
	"io"

	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	car "github.com/ipld/go-car"
	carutil "github.com/ipld/go-car/util"
	mh "github.com/multiformats/go-multihash"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"
)

// WriteCar writes every block reachable from root to w in CAR format.
// Only DAG-CBOR links are followed. Other links, such as actor code CIDs, name content
// that lives outside the state tree and are not written.
func WriteCar(bs ipldcbor.IpldBlockstore, root cid.Cid, w io.Writer) error {
	if err := car.WriteHeader(&car.CarHeader{Roots: []cid.Cid{root}, Version: 1}, w); err != nil {
		return xerrors.Errorf("failed to write car header: %w", err)
	}

	seen := cid.NewSet()
	queue := []cid.Cid{root}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c.Prefix().MhType == mh.IDENTITY || !seen.Visit(c) {
			continue
		}

		blk, err := bs.Get(c)
		if err != nil {
			return xerrors.Errorf("failed to load block %s: %w", c, err)
		}
		if err := carutil.LdWrite(w, c.Bytes(), blk.RawData()); err != nil {
			return xerrors.Errorf("failed to write block %s: %w", c, err)
		}
		if c.Prefix().Codec != cid.DagCBOR {
			continue
		}
		err = cbg.ScanForLinks(bytes.NewReader(blk.RawData()), func(link cid.Cid) {
			if link.Prefix().Codec == cid.DagCBOR {
				queue = append(queue, link)
			}
		})
		if err != nil {
			return xerrors.Errorf("failed to scan block %s for links: %w", c, err)
		}
	}
	return nil
}

// LoadCar reads a CAR from r into bs and returns its single root.
func LoadCar(bs *BlockStoreInMemory, r io.Reader) (cid.Cid, error) {
	header, err := car.LoadCar(bs, r)
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to load car: %w", err)
	}
	if len(header.Roots) != 1 {
		return cid.Undef, xerrors.Errorf("expected one root, got %d", len(header.Roots))
	}
	return header.Roots[0], nil
}
