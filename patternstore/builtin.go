package patternstore

import (
	"bytes"
	_ "embed"
	"sync"
)

//go:embed data/patterns.json
var builtinJSON []byte

var builtin = sync.OnceValue(func() *MapStore {
	s, err := LoadJSON(bytes.NewReader(builtinJSON))
	if err != nil {
		panic("patternstore: invalid built-in library: " + err.Error())
	}
	return s
})

// Builtin returns the library shipped with the module: t1001 square,
// t1002 hexagonal, t2001 triangular, t2002 truncated square (4.8.8) and
// t3001 trihexagonal (3.6.3.6).
func Builtin() *MapStore {
	return builtin()
}
