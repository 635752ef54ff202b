package mock

import (
	"reflect"
	"testing"

	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/vestlabs/vesting-actors/actors/runtime"
)

var typeOfRuntimeInterface = reflect.TypeOf((*runtime.Runtime)(nil)).Elem()
var typeOfCborUnmarshaler = reflect.TypeOf((*cbor.Unmarshaler)(nil)).Elem()
var typeOfCborMarshaler = reflect.TypeOf((*cbor.Marshaler)(nil)).Elem()

// checkMethodShape checks that mt is dispatchable: a runtime and a pointer to CBOR params in,
// a single CBOR-marshalable value out.
func checkMethodShape(mt reflect.Type) error {
	switch {
	case mt.Kind() != reflect.Func:
		return xerrors.Errorf("not a function")
	case mt.NumIn() != 2:
		return xerrors.Errorf("must have two parameters, got %d", mt.NumIn())
	case mt.In(0) != typeOfRuntimeInterface:
		return xerrors.Errorf("first parameter must be the runtime, got %v", mt.In(0))
	case mt.In(1).Kind() != reflect.Ptr:
		return xerrors.Errorf("params must be a pointer, got %v", mt.In(1))
	case !mt.In(1).Implements(typeOfCborUnmarshaler):
		return xerrors.Errorf("params must be CBOR-unmarshalable, got %v", mt.In(1))
	case mt.NumOut() != 1:
		return xerrors.Errorf("must return a single value, got %d", mt.NumOut())
	case !mt.Out(0).Implements(typeOfCborMarshaler):
		return xerrors.Errorf("return must be CBOR-marshalable, got %v", mt.Out(0))
	}
	return nil
}

// CheckActorExports checks that every exported method of an actor has the dispatchable shape.
func CheckActorExports(t *testing.T, act runtime.VMActor) {
	for i, m := range act.Exports() {
		if i == 0 { // Send is implicit
			require.Nil(t, m, "method 0 must not be exported")
			continue
		}
		if m == nil {
			continue
		}
		require.NoError(t, checkMethodShape(reflect.TypeOf(m)), "export %d", i)
	}
}
